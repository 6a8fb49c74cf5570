// Package session 把一条 kintone 记录变成一次可玩的福笑い会话
//
// PlaySpec 在会话构建边界把记录字段转换成带默认值的强类型数据；
// Lifecycle 是会话的状态机（Hidden/Shown/Completing/Reloading）；
// Completion 负责完成时的评分、快照上传和记录回写。
package session

import (
	"log"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scoring"
)

// PlaySpec 一次会话需要的记录数据，构建后不可变
type PlaySpec struct {
	RecordID string
	Revision string
	Status   string

	Base  *kintone.Attachment  // 背景，0 或 1 个
	Parts []kintone.Attachment // 部件，按记录顺序
	BGM   *kintone.Attachment  // 背景音乐，0 或 1 个

	Targets []scoring.Target
	Weight  float64

	// TargetsDegraded 目标坐标字段无法解析，评分退化为空目标列表
	TargetsDegraded bool
}

// SpecFromRecord 从记录读取会话数据
//
// 缺失或格式错误的字段按以下规则处理：
//   - 附件字段缺失 → 没有该资源
//   - 目标坐标为空或不是 JSON 数组 → 空目标列表（记录警告）
//   - 难度系数为空、非数字或不为正 → 1
func SpecFromRecord(rec *kintone.Record, fields config.FieldCodes) PlaySpec {
	spec := PlaySpec{
		RecordID: rec.ID(),
		Revision: rec.Revision(),
		Status:   rec.Text(fields.Status),
		Base:     rec.File(fields.BaseImage),
		Parts:    rec.Files(fields.PartImages),
		BGM:      rec.File(fields.BGM),
		Weight:   scoring.CoerceWeight(rec.Text(fields.DifficultyWeight)),
	}

	targets, err := scoring.DecodeTargets(rec.Text(fields.TargetCoordinates))
	if err != nil {
		log.Printf("[Session] Warning: record %s: %v, scoring without targets", spec.RecordID, err)
		spec.TargetsDegraded = true
	}
	spec.Targets = targets
	return spec
}

// Playable 记录状态是否允许自动打开游戏面板
func (s PlaySpec) Playable(statusPlaying string) bool {
	return s.Status == statusPlaying
}

// AssetsRequest 返回需要下载的附件
func (s PlaySpec) AssetsRequest() game.SessionAssetsRequest {
	return game.SessionAssetsRequest{
		Background: s.Base,
		Parts:      s.Parts,
		Music:      s.BGM,
	}
}

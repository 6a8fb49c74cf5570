package session

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scoring"
)

// RecordStore 远程记录存储（写入部分）
// *kintone.Client 实现了此接口
type RecordStore interface {
	UploadFile(ctx context.Context, name, contentType string, data []byte) (string, error)
	UpdateRecord(ctx context.Context, update *kintone.RecordUpdate) (string, error)
}

// SceneSource 完成流程从画布读取的数据
// *scene.Graph 实现了此接口
type SceneSource interface {
	Placements() []scoring.Placement
	Snapshot(scale float64) *image.RGBA
}

// Capture 完成时刻的画布状态
// 捕获之后对画布的修改不会影响已捕获的数据
type Capture struct {
	Placements []scoring.Placement
	Score      int
	Snapshot   *image.RGBA
}

// Result 完成流程成功后的结果
type Result struct {
	FileKey  string
	Score    int
	PlayLog  string
	Revision string // 更新后的记录修订号
}

// Completion 完成流程
//
// Capture 必须在 UI 协程调用（读取画布并停止音乐）；
// Persist 只做网络 I/O，可以在工作协程中运行。
type Completion struct {
	store  RecordStore
	appID  string
	fields config.FieldCodes
	spec   PlaySpec
	scene  SceneSource
	music  *game.MusicHandle
}

// NewCompletion 创建完成流程
// music 可以为 nil
func NewCompletion(store RecordStore, appID string, fields config.FieldCodes, spec PlaySpec, scene SceneSource, music *game.MusicHandle) *Completion {
	return &Completion{
		store:  store,
		appID:  appID,
		fields: fields,
		spec:   spec,
		scene:  scene,
		music:  music,
	}
}

// Capture 停止音乐，读取放置结果，计算分数并生成 2 倍超采样快照
func (c *Completion) Capture() Capture {
	c.music.Stop()

	placements := c.scene.Placements()
	score := scoring.Score(placements, c.spec.Targets, c.spec.Weight)

	return Capture{
		Placements: placements,
		Score:      score,
		Snapshot:   c.scene.Snapshot(config.SnapshotScale),
	}
}

// Persist 上传快照并用一次更新写回结果图片、放置日志和分数
//
// 返回的错误都是 *PersistenceError；上传失败时不会更新记录。
func (c *Completion) Persist(ctx context.Context, capture Capture) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, capture.Snapshot); err != nil {
		return nil, &PersistenceError{Step: StepEncode, Err: err}
	}

	name := fmt.Sprintf(config.ResultImageNameFormat, c.spec.RecordID)
	fileKey, err := c.store.UploadFile(ctx, name, "image/png", buf.Bytes())
	if err != nil {
		return nil, &PersistenceError{Step: StepUpload, Err: err}
	}
	log.Printf("[Completion] Uploaded %s (%d bytes)", name, buf.Len())

	playLog, err := scoring.PlayLog(capture.Placements)
	if err != nil {
		return nil, &PersistenceError{Step: StepPlayLog, Err: err}
	}

	update := kintone.NewRecordUpdate(c.appID, c.spec.RecordID).
		SetFiles(c.fields.ResultImage, fileKey).
		SetText(c.fields.PlayLog, string(playLog)).
		SetNumber(c.fields.Score, capture.Score)

	revision, err := c.store.UpdateRecord(ctx, update)
	if err != nil {
		return nil, &PersistenceError{Step: StepUpdate, Err: err}
	}
	log.Printf("[Completion] Record %s updated (score %d, revision %s)", c.spec.RecordID, capture.Score, revision)

	return &Result{
		FileKey:  fileKey,
		Score:    capture.Score,
		PlayLog:  string(playLog),
		Revision: revision,
	}, nil
}

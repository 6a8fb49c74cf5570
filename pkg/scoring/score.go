package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/decker502/fukuwarai/pkg/config"
)

// CoerceWeight 将记录中的难度系数文本转换为数值
//
// 空字符串、非数字、NaN、无穷大、0 和负数都视为无效，返回默认值 1。
// 0 与 kintone 端插件的 `Number(x) || 1` 一致；负数会让分数超过满分。
func CoerceWeight(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.DefaultDifficultyWeight
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return config.DefaultDifficultyWeight
	}
	return normalizeWeight(w)
}

func normalizeWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return config.DefaultDifficultyWeight
	}
	return w
}

// WeightedDistance 计算所有已匹配部件的加权欧氏距离之和
//
// 每个放置按名称匹配第一个同名目标；找不到目标的放置贡献 0。
func WeightedDistance(placements []Placement, targets []Target, weight float64) float64 {
	weight = normalizeWeight(weight)

	total := 0.0
	for _, p := range placements {
		target, ok := findTarget(targets, p.Name)
		if !ok {
			continue
		}
		total += math.Hypot(p.X-target.X, p.Y-target.Y) * weight
	}
	return total
}

// Score 计算最终得分
//
// score = round(max(BaseScore - 加权距离之和, 0))
// 结果总在 [0, 100] 内；只有所有已匹配部件与目标完全重合时为 100。
func Score(placements []Placement, targets []Target, weight float64) int {
	remaining := math.Max(config.BaseScore-WeightedDistance(placements, targets, weight), 0)
	return int(math.Round(remaining))
}

// findTarget 返回第一个同名目标
func findTarget(targets []Target, name string) (Target, bool) {
	for _, t := range targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

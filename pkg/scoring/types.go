// Package scoring 实现福笑い的评分算法
//
// 评分是纯函数：放置结果 + 目标坐标 + 难度系数 → 0~100 的整数分。
// 本包不依赖 Ebitengine，可以在无头工具（cmd/score）中复用。
package scoring

// Target 部件的正确位置（从记录的 JSON 字段解码，整个会话内不可变）
type Target struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Placement 完成时刻部件的实际位置（只在放置日志中持久化）
type Placement struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体（如完成提示）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	FadeOut         float64 // 结束前淡出的时长(秒)，0 表示不淡出
	Alpha           float64 // 当前不透明度，由 LifetimeSystem 每帧写入
	IsExpired       bool    // 是否已过期
}

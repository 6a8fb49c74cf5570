package components

// SliderComponent 滑动条组件
// 用于音量控制等需要滑动调整数值的UI元素
type SliderComponent struct {
	// 滑动条尺寸
	SlotWidth  float64 // 滑槽宽度
	SlotHeight float64 // 滑槽高度
	KnobSize   float64 // 滑块直径

	// 当前值（0.0 - 1.0）
	Value float64
	// Step 值的量化步长，0 表示连续
	Step float64

	// 标签文字（绘制在滑槽左侧）
	Label string

	// 状态
	IsDragging bool // 是否正在拖动
	IsHovered  bool // 是否指针悬停

	// 回调函数
	OnValueChange func(value float64) // 值改变时的回调
	OnRelease     func(value float64) // 拖动结束时的回调（用于保存设置）
}

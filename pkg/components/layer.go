package components

// Layer 绘制层，数值小的先绘制
type Layer int

const (
	// LayerBackground 静态背景层，不响应指针
	LayerBackground Layer = iota
	// LayerParts 可交互的部件层，位于背景之上
	LayerParts
)

// LayerComponent 标记实体所属的绘制层
type LayerComponent struct {
	Layer Layer
}

package components

// PartComponent 福笑い的一个部件
// Name 来自附件文件名，用于与目标坐标按名称匹配
type PartComponent struct {
	Name string
}

// DraggableComponent 标记实体可以被指针拖动
type DraggableComponent struct {
	IsDragging bool
	// 按下时指针相对实体左上角的偏移，拖动过程中保持不变
	GrabOffsetX float64
	GrabOffsetY float64
}

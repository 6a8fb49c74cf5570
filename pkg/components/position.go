package components

// PositionComponent 实体在所属坐标系中的位置（左上角，像素）
// 场景节点使用画布坐标，界面元素使用屏幕坐标
type PositionComponent struct {
	X float64
	Y float64
}

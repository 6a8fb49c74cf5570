package components

// SelectionHighlightComponent 选中描边
// 同一时刻最多只有一个部件的 IsActive 为 true
type SelectionHighlightComponent struct {
	IsActive bool
	Color    [4]uint8 // R, G, B, A
	Width    float64  // 描边宽度（像素）
}

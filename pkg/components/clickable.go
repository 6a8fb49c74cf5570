package components

// ClickableComponent 部件的命中区域（相对部件左上角）
// Enabled 为 false 时点击穿透到下层部件
type ClickableComponent struct {
	Width   float64
	Height  float64
	Enabled bool
}

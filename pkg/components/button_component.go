package components

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonComponent 按钮组件
// 包含按钮的外观、文字、状态和点击回调，不包含任何方法
//
// 按钮用纯色圆角矩形绘制，尺寸由文字宽度决定（见 entities.NewButton）。
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string
	// Font 文字字体
	Font text.Face
	// TextColor 文字颜色（RGBA）
	TextColor [4]uint8
	// FillColor 背景颜色（RGBA），悬停和按下时会自动调亮/调暗
	FillColor [4]uint8

	// Width 按钮宽度（像素）
	Width float64
	// Height 按钮高度（像素）
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool

	// OnClick 点击回调函数（指针在按钮内释放时触发）
	OnClick func()
}

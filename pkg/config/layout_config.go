package config

// 布局配置常量
// 定义详情视图与全屏游戏面板（overlay）的布局参数，单位均为逻辑像素

// Window 窗口尺寸（可被 YAML 配置覆盖）
const (
	// DefaultWindowWidth 默认逻辑屏幕宽度
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 默认逻辑屏幕高度
	DefaultWindowHeight = 800
)

// Overlay 全屏面板布局
const (
	// OverlayHeaderHeight 面板标题栏高度
	OverlayHeaderHeight = 48.0

	// OverlayControlsHeight 面板底部控制栏高度（音量滑块 + 完成按钮）
	OverlayControlsHeight = 64.0

	// OverlayPadding 面板内边距
	OverlayPadding = 16.0

	// OverlayBackdropAlpha 面板背后遮罩的不透明度
	OverlayBackdropAlpha = 0.6
)

// Buttons 按钮尺寸
const (
	// ButtonHeight 标准按钮高度
	ButtonHeight = 36.0

	// ButtonMinWidth 标准按钮最小宽度
	ButtonMinWidth = 120.0

	// ButtonTextPadding 按钮文字左右留白
	ButtonTextPadding = 16.0

	// SliderWidth 音量滑块宽度
	SliderWidth = 180.0

	// SliderHeight 音量滑块高度
	SliderHeight = 12.0

	// SliderKnobSize 音量滑块旋钮尺寸
	SliderKnobSize = 18.0
)

// Detail view 详情视图布局
const (
	// DetailLineHeight 字段列表行高
	DetailLineHeight = 28.0

	// DetailMarginX 字段列表左边距
	DetailMarginX = 40.0

	// DetailMarginTop 字段列表上边距
	DetailMarginTop = 96.0

	// DetailScrollSpeed 鼠标滚轮每格滚动的像素数
	DetailScrollSpeed = 32.0

	// UIFontSize 界面字体大小
	UIFontSize = 18.0

	// TitleFontSize 标题字体大小
	TitleFontSize = 24.0
)

// CanvasRect 返回面板内画布区域（屏幕坐标）
//
// 参数：
//   - screenW, screenH: 逻辑屏幕尺寸
//
// 返回：
//   - x, y: 画布左上角
//   - w, h: 画布尺寸
func CanvasRect(screenW, screenH int) (x, y, w, h float64) {
	x = OverlayPadding
	y = OverlayHeaderHeight
	w = float64(screenW) - 2*OverlayPadding
	h = float64(screenH) - OverlayHeaderHeight - OverlayControlsHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return x, y, w, h
}

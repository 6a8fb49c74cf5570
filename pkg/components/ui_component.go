package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the pointer is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being pressed.
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// UIGroup 界面元素所属的区域
// 场景根据会话状态切换各区域的可见性
type UIGroup int

const (
	// GroupDetail 记录详情视图（宿主页面）
	GroupDetail UIGroup = iota
	// GroupOverlay 全屏游戏面板
	GroupOverlay
)

// UIComponent marks an entity as a UI element and tracks its visibility.
type UIComponent struct {
	Group   UIGroup
	Visible bool
}

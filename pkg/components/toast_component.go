package components

// ToastComponent 屏幕中央的短暂提示（配合 LifetimeComponent 自动消失）
type ToastComponent struct {
	Title   string
	Message string
	IsError bool
}

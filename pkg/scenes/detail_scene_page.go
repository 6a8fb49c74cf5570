package scenes

import (
	"fmt"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/entities"
	"github.com/decker502/fukuwarai/pkg/i18n"
	"github.com/decker502/fukuwarai/pkg/session"
	"github.com/decker502/fukuwarai/pkg/systems"
)

// DetailScene 作为会话的宿主视图
var _ session.Page = (*DetailScene)(nil)

// LockScroll 锁定时字段列表不响应滚轮
func (s *DetailScene) LockScroll(locked bool) {
	s.scrollLocked = locked
}

// ShowOverlay 显示或隐藏全屏面板
// 面板打开时详情视图的按钮不响应指针
func (s *DetailScene) ShowOverlay(visible bool) {
	s.overlayVisible = visible
	systems.SetGroupVisible(s.entityManager, components.GroupOverlay, visible)
	systems.SetGroupVisible(s.entityManager, components.GroupDetail, !visible)
	s.syncUI()
}

// FocusCanvas 方向键只在画布获得焦点时移动部件
func (s *DetailScene) FocusCanvas(focused bool) {
	if s.selection != nil {
		s.selection.SetFocused(focused)
	}
}

// ShowCompleted 显示完成提示
func (s *DetailScene) ShowCompleted(result *session.Result, seconds float64) {
	entities.NewToastEntity(s.entityManager,
		i18n.T("COMPLETED_TITLE"),
		fmt.Sprintf(i18n.T("COMPLETED_MESSAGE"), result.Score),
		seconds, false)
}

// ShowError 在面板中显示完成失败的原因，nil 清除
func (s *DetailScene) ShowError(err error) {
	s.overlayErr = err
}

// OverlayVisible 面板是否显示
func (s *DetailScene) OverlayVisible() bool {
	return s.overlayVisible
}

// ScrollLocked 字段列表是否被锁定
func (s *DetailScene) ScrollLocked() bool {
	return s.scrollLocked
}

// OverlayError 面板中显示的错误
func (s *DetailScene) OverlayError() error {
	return s.overlayErr
}

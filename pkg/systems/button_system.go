package systems

import (
	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针释放（触发 OnClick 回调）
//   - 根据 Enabled 状态和所属区域的可见性决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	pointer       utils.PointerInput
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, pointer utils.PointerInput) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新按钮交互状态
// 检测指针位置和释放，更新按钮状态并触发回调
func (s *ButtonSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.pointer.Position()
	mousePressed := s.pointer.Pressed()
	mouseReleased := s.pointer.JustReleased()

	// 查询所有按钮实体
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	// 回调可能改变其他按钮的可见性，先收集再触发
	var clicked []func()

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !isVisible(s.entityManager, entityID) {
			button.State = components.UINormal
			continue
		}

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		isHovered := utils.InRect(float64(mouseX), float64(mouseY), pos.X, pos.Y, button.Width, button.Height)
		if !isHovered {
			button.State = components.UINormal
			continue
		}

		switch {
		case mousePressed:
			button.State = components.UIClicked
		case mouseReleased:
			// 释放瞬间触发回调，之后恢复悬停状态
			if button.OnClick != nil {
				clicked = append(clicked, button.OnClick)
			}
			button.State = components.UIHovered
		default:
			button.State = components.UIHovered
		}
	}

	for _, onClick := range clicked {
		onClick()
	}
}

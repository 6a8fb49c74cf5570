package systems

import (
	"image/color"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的按钮实体
//
// 职责：
//   - 渲染按钮背景（纯色矩形，按状态调亮/调暗）
//   - 渲染按钮文字（自动居中）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 渲染所有按钮
// group 为 nil 时渲染所有区域，否则只渲染指定区域的按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image, group *components.UIGroup) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		if !isVisible(s.entityManager, entityID) {
			continue
		}
		if group != nil {
			ui, ok := ecs.GetComponent[*components.UIComponent](s.entityManager, entityID)
			if !ok || ui.Group != *group {
				continue
			}
		}
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	vector.FillRect(screen,
		float32(pos.X), float32(pos.Y), float32(button.Width), float32(button.Height),
		buttonFill(button), true)

	s.drawButtonText(screen, button, pos.X, pos.Y)
}

// buttonFill 根据按钮状态计算背景色
func buttonFill(button *components.ButtonComponent) color.RGBA {
	c := color.RGBA{R: button.FillColor[0], G: button.FillColor[1], B: button.FillColor[2], A: button.FillColor[3]}
	switch button.State {
	case components.UIHovered:
		return shade(c, 1.15)
	case components.UIClicked:
		return shade(c, 0.85)
	case components.UIDisabled:
		return color.RGBA{R: 150, G: 150, B: 150, A: c.A}
	}
	return c
}

// shade 按比例调整颜色亮度（预乘 alpha 下限制在 A 以内）
func shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f > float64(c.A) {
			f = float64(c.A)
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// drawButtonText 渲染按钮文字（自动居中）
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, button *components.ButtonComponent, x, y float64) {
	if button.Text == "" || button.Font == nil {
		return
	}

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter   // 水平居中
	op.LayoutOptions.SecondaryAlign = text.AlignCenter // 垂直居中
	op.GeoM.Translate(x+button.Width/2, y+button.Height/2)
	op.ColorScale.ScaleWithColor(color.RGBA{
		R: button.TextColor[0],
		G: button.TextColor[1],
		B: button.TextColor[2],
		A: button.TextColor[3],
	})

	text.Draw(screen, button.Text, button.Font, op)
}

package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	sliderTrackColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	sliderFillColor  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	sliderKnobColor  = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	sliderTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// SliderRenderSystem 滑动条渲染系统
// 标签绘制在滑槽左侧，百分比绘制在右侧
type SliderRenderSystem struct {
	entityManager *ecs.EntityManager
	font          text.Face
}

// NewSliderRenderSystem 创建滑动条渲染系统
func NewSliderRenderSystem(em *ecs.EntityManager, font text.Face) *SliderRenderSystem {
	return &SliderRenderSystem{
		entityManager: em,
		font:          font,
	}
}

// Draw 渲染所有可见的滑动条
func (s *SliderRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		if !isVisible(s.entityManager, id) {
			continue
		}
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		x, y := float32(pos.X), float32(pos.Y)
		w, h := float32(slider.SlotWidth), float32(slider.SlotHeight)

		vector.FillRect(screen, x, y, w, h, sliderTrackColor, true)
		vector.FillRect(screen, x, y, w*float32(slider.Value), h, sliderFillColor, true)

		radius := float32(slider.KnobSize / 2)
		if slider.IsHovered || slider.IsDragging {
			radius += 2
		}
		vector.FillCircle(screen, x+w*float32(slider.Value), y+h/2, radius, sliderKnobColor, true)

		if s.font == nil {
			continue
		}

		if slider.Label != "" {
			op := &text.DrawOptions{}
			op.LayoutOptions.PrimaryAlign = text.AlignEnd
			op.LayoutOptions.SecondaryAlign = text.AlignCenter
			op.GeoM.Translate(pos.X-slider.KnobSize, pos.Y+slider.SlotHeight/2)
			op.ColorScale.ScaleWithColor(sliderTextColor)
			text.Draw(screen, slider.Label, s.font, op)
		}

		op := &text.DrawOptions{}
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(pos.X+slider.SlotWidth+slider.KnobSize, pos.Y+slider.SlotHeight/2)
		op.ColorScale.ScaleWithColor(sliderTextColor)
		text.Draw(screen, fmt.Sprintf("%d%%", int(slider.Value*100+0.5)), s.font, op)
	}
}

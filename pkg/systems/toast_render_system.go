package systems

import (
	"image/color"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	toastPaddingX = 32.0
	toastPaddingY = 20.0
	toastLineGap  = 8.0
)

// ToastRenderSystem 在屏幕中央渲染提示框
// 有 LifetimeComponent 时使用其 Alpha 淡出
type ToastRenderSystem struct {
	entityManager *ecs.EntityManager
	titleFont     text.Face
	bodyFont      text.Face
}

// NewToastRenderSystem 创建提示渲染系统
func NewToastRenderSystem(em *ecs.EntityManager, titleFont, bodyFont text.Face) *ToastRenderSystem {
	return &ToastRenderSystem{
		entityManager: em,
		titleFont:     titleFont,
		bodyFont:      bodyFont,
	}
}

// Draw 渲染所有提示
func (s *ToastRenderSystem) Draw(screen *ebiten.Image) {
	if s.titleFont == nil || s.bodyFont == nil {
		return
	}
	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2

	for _, id := range ecs.GetEntitiesWith1[*components.ToastComponent](s.entityManager) {
		toast, _ := ecs.GetComponent[*components.ToastComponent](s.entityManager, id)

		opacity := 1.0
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
			opacity = lifetime.Alpha
		}

		titleW, titleH := text.Measure(toast.Title, s.titleFont, 0)
		bodyW, bodyH := text.Measure(toast.Message, s.bodyFont, 0)
		w := max(titleW, bodyW) + 2*toastPaddingX
		h := titleH + bodyH + toastLineGap + 2*toastPaddingY
		if toast.Message == "" {
			h = titleH + 2*toastPaddingY
		}

		bg := color.RGBA{R: 30, G: 30, B: 30, A: 230}
		if toast.IsError {
			bg = color.RGBA{R: 140, G: 30, B: 30, A: 230}
		}
		vector.FillRect(screen,
			float32(cx-w/2), float32(cy-h/2), float32(w), float32(h),
			scaleAlpha(bg, opacity), true)

		y := cy - h/2 + toastPaddingY
		s.drawCentered(screen, toast.Title, s.titleFont, cx, y, opacity)
		if toast.Message != "" {
			s.drawCentered(screen, toast.Message, s.bodyFont, cx, y+titleH+toastLineGap, opacity)
		}
	}
}

func (s *ToastRenderSystem) drawCentered(screen *ebiten.Image, str string, face text.Face, cx, y, opacity float64) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(opacity))
	text.Draw(screen, str, face, op)
}

// scaleAlpha 按不透明度缩放预乘 alpha 颜色
func scaleAlpha(c color.RGBA, opacity float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

package scene

import (
	"image"
	"image/color"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw 把画布绘制到 dst，geoM 把画布坐标变换到 dst 坐标
// 绘制顺序：背景，然后按插入顺序绘制每个部件（阴影、图像、选中描边）
func (g *Graph) Draw(dst *ebiten.Image, geoM ebiten.GeoM) {
	if g.released {
		return
	}
	if g.background != 0 {
		g.drawSprite(dst, g.background, geoM)
	}
	for _, p := range g.parts {
		g.drawShadow(dst, p.Entity, geoM)
		g.drawSprite(dst, p.Entity, geoM)
		g.drawHighlight(dst, p.Entity, geoM)
	}
}

// gpuImage 按需把 CPU 图像上传到 GPU（只能在 UI 协程调用）
func gpuImage(cached **ebiten.Image, src image.Image) *ebiten.Image {
	if *cached == nil && src != nil {
		*cached = ebiten.NewImageFromImage(src)
	}
	return *cached
}

func (g *Graph) drawSprite(dst *ebiten.Image, id ecs.EntityID, geoM ebiten.GeoM) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](g.em, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
	if !ok {
		return
	}
	img := gpuImage(&sprite.Image, sprite.Source)
	if img == nil {
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sprite.Width/float64(b.Dx()), sprite.Height/float64(b.Dy()))
	op.GeoM.Translate(pos.X, pos.Y)
	op.GeoM.Concat(geoM)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func (g *Graph) drawShadow(dst *ebiten.Image, id ecs.EntityID, geoM ebiten.GeoM) {
	shadow, ok := ecs.GetComponent[*components.ShadowComponent](g.em, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
	if !ok {
		return
	}
	img := gpuImage(&shadow.Image, shadow.Source)
	if img == nil {
		return
	}

	pad := float64(shadowPad(shadow.Blur))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X-pad, pos.Y-pad)
	op.GeoM.Concat(geoM)
	dst.DrawImage(img, op)
}

func (g *Graph) drawHighlight(dst *ebiten.Image, id ecs.EntityID, geoM ebiten.GeoM) {
	hl, ok := ecs.GetComponent[*components.SelectionHighlightComponent](g.em, id)
	if !ok || !hl.IsActive {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
	if !ok {
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](g.em, id)
	if !ok {
		return
	}

	x0, y0 := geoM.Apply(pos.X, pos.Y)
	x1, y1 := geoM.Apply(pos.X+sprite.Width, pos.Y+sprite.Height)
	vector.StrokeRect(dst,
		float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
		float32(hl.Width), highlightColor(hl), true)
}

func highlightColor(hl *components.SelectionHighlightComponent) color.RGBA {
	return color.RGBA{R: hl.Color[0], G: hl.Color[1], B: hl.Color[2], A: hl.Color[3]}
}

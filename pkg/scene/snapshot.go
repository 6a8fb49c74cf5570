package scene

import (
	"image"
	"math"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"golang.org/x/image/draw"
)

// Snapshot 在 CPU 上合成画布的当前画面
//
// 参数：
//   - scale: 超采样倍率（完成流程使用 2），<= 0 时按 1 处理
//
// 返回：
//   - *image.RGBA: 尺寸为 ceil(width*scale) × ceil(height*scale)，没有背景的区域透明
//
// 只读取 CPU 图像，可以在任意协程调用，但不能与修改画布的操作并发。
func (g *Graph) Snapshot(scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	out := image.NewRGBA(image.Rect(0, 0,
		int(math.Ceil(g.width*scale)), int(math.Ceil(g.height*scale))))
	if g.released {
		return out
	}

	if g.background != 0 {
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](g.em, g.background); ok {
			composite(out, sprite.Source, 0, 0, sprite.Width*scale, sprite.Height*scale)
		}
	}

	for _, p := range g.parts {
		pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, p.Entity)
		if !ok {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](g.em, p.Entity)
		if !ok {
			continue
		}

		if shadow, ok := ecs.GetComponent[*components.ShadowComponent](g.em, p.Entity); ok && shadow.Source != nil {
			pad := float64(shadowPad(shadow.Blur))
			sb := shadow.Source.Bounds()
			composite(out, shadow.Source,
				(pos.X-pad)*scale, (pos.Y-pad)*scale,
				float64(sb.Dx())*scale, float64(sb.Dy())*scale)
		}

		composite(out, sprite.Source, pos.X*scale, pos.Y*scale, sprite.Width*scale, sprite.Height*scale)

		if hl, ok := ecs.GetComponent[*components.SelectionHighlightComponent](g.em, p.Entity); ok && hl.IsActive {
			strokeRect(out, pos.X*scale, pos.Y*scale, sprite.Width*scale, sprite.Height*scale,
				hl.Width*scale, image.NewUniform(highlightColor(hl)))
		}
	}
	return out
}

// composite 把 src 缩放后叠加到 dst 的 (x, y, w, h) 区域
func composite(dst *image.RGBA, src image.Image, x, y, w, h float64) {
	if src == nil {
		return
	}
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)))
	if r.Empty() {
		return
	}
	draw.CatmullRom.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}

// strokeRect 以矩形边框为中线绘制宽度为 width 的描边
func strokeRect(dst *image.RGBA, x, y, w, h, width float64, src image.Image) {
	half := width / 2
	ox0, oy0 := int(math.Round(x-half)), int(math.Round(y-half))
	ox1, oy1 := int(math.Round(x+w+half)), int(math.Round(y+h+half))
	ix0, iy0 := int(math.Round(x+half)), int(math.Round(y+half))
	ix1, iy1 := int(math.Round(x+w-half)), int(math.Round(y+h-half))

	bands := []image.Rectangle{
		image.Rect(ox0, oy0, ox1, iy0), // 上
		image.Rect(ox0, iy1, ox1, oy1), // 下
		image.Rect(ox0, iy0, ix0, iy1), // 左
		image.Rect(ix1, iy0, ox1, iy1), // 右
	}
	for _, band := range bands {
		draw.Draw(dst, band.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}

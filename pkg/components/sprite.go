package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 存储实体的视觉表现
//
// Source 是解码后的 CPU 图像，快照合成直接使用它；
// Image 是对应的 GPU 图像，由渲染时在 UI 协程中按需创建。
// Width/Height 是绘制尺寸（背景会被拉伸到画布大小，部件使用原始尺寸）。
type SpriteComponent struct {
	Source image.Image
	Image  *ebiten.Image
	Width  float64
	Height float64
}

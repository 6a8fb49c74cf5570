package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShadowComponent 部件的柔和阴影
//
// 阴影由部件的 alpha 通道模糊得到，四周各向外扩展 Blur 像素。
// Source 在部件创建时预先计算，Image 在首次绘制时上传到 GPU。
type ShadowComponent struct {
	// Blur 模糊半径 (像素)
	Blur float64

	// Alpha 阴影不透明度 (0.0-1.0)
	Alpha float32

	Source image.Image
	Image  *ebiten.Image
}

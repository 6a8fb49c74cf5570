package scene

import (
	"image"
	"math"
)

// shadowPad 阴影图像每侧相对部件扩展的像素数
func shadowPad(blur float64) int {
	if blur <= 0 {
		return 0
	}
	return int(math.Ceil(blur))
}

// buildShadow 由部件的 alpha 通道生成黑色柔和阴影
//
// 结果图像四周各比 src 大 shadowPad(blur) 像素，alpha 乘以 opacity。
// 模糊用两遍可分离的盒式滤波近似高斯模糊。
func buildShadow(src image.Image, blur float64, opacity float64) *image.NRGBA {
	pad := shadowPad(blur)
	b := src.Bounds()
	w, h := b.Dx()+2*pad, b.Dy()+2*pad

	mask := make([]float64, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			mask[(y-b.Min.Y+pad)*w+(x-b.Min.X+pad)] = float64(a) / 0xffff
		}
	}

	if radius := pad / 2; radius > 0 {
		tmp := make([]float64, len(mask))
		for pass := 0; pass < 2; pass++ {
			boxBlurH(mask, tmp, w, h, radius)
			boxBlurV(tmp, mask, w, h, radius)
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, a := range mask {
		v := a * opacity * 255
		if v > 255 {
			v = 255
		}
		out.Pix[i*4+3] = uint8(math.Round(v))
	}
	return out
}

// boxBlurH 水平盒式滤波，窗口外视为透明
func boxBlurH(src, dst []float64, w, h, r int) {
	norm := 1 / float64(2*r+1)
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := x - r; k <= x+r; k++ {
				if k >= 0 && k < w {
					sum += row[k]
				}
			}
			dst[y*w+x] = sum * norm
		}
	}
}

// boxBlurV 垂直盒式滤波
func boxBlurV(src, dst []float64, w, h, r int) {
	norm := 1 / float64(2*r+1)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sum := 0.0
			for k := y - r; k <= y+r; k++ {
				if k >= 0 && k < h {
					sum += src[k*w+x]
				}
			}
			dst[y*w+x] = sum * norm
		}
	}
}

package scene

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  image.Rectangle
	}{
		{"oversampled", 2, image.Rect(0, 0, 800, 600)},
		{"natural", 1, image.Rect(0, 0, 400, 300)},
		{"invalid scale falls back to 1", 0, image.Rect(0, 0, 400, 300)},
		{"fractional rounds up", 1.5, image.Rect(0, 0, 600, 450)},
	}
	g := NewGraph(400, 300, rand.New(rand.NewSource(1)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Snapshot(tt.scale).Bounds())
		})
	}
}

func TestSnapshotComposition(t *testing.T) {
	g := NewGraph(100, 100, rand.New(rand.NewSource(1)))
	blue := color.NRGBA{B: 255, A: 255}
	red := color.NRGBA{R: 255, A: 255}

	g.AttachBackground(&game.ResolvedAsset{Name: "bg", Image: solidImage(10, 10, blue)}, 100, 100)
	parts := g.AttachParts([]game.ResolvedAsset{{Name: "nose", Image: solidImage(20, 20, red)}}, 100, 100)
	require.Len(t, parts, 1)
	g.SetPosition(parts[0].Entity, 40, 40)

	snap := g.Snapshot(2)

	// 背景被拉伸到整个画布
	r, gr, b, a := snap.At(4, 196).RGBA()
	assert.InDelta(t, 0, r, 0x100)
	assert.InDelta(t, 0, gr, 0x100)
	assert.InDelta(t, 0xffff, b, 0x100)
	assert.InDelta(t, 0xffff, a, 0x100)

	// 部件中心 (50, 50) × 2
	r, _, b, _ = snap.At(100, 100).RGBA()
	assert.InDelta(t, 0xffff, r, 0x100)
	assert.InDelta(t, 0, b, 0x100)

	// 部件外侧紧邻处有阴影，颜色比纯背景暗
	_, _, shadowB, _ := snap.At(78, 100).RGBA()
	assert.Less(t, shadowB, uint32(0xf000))
}

func TestSnapshotIncludesHighlight(t *testing.T) {
	g := NewGraph(100, 100, rand.New(rand.NewSource(1)))
	parts := g.AttachParts([]game.ResolvedAsset{{Name: "nose", Image: solidImage(20, 20, color.NRGBA{R: 255, A: 255})}}, 100, 100)
	g.SetPosition(parts[0].Entity, 40, 40)
	g.SetHighlight(parts[0].Entity)

	snap := g.Snapshot(1)
	c := snap.RGBAAt(50, 40)
	assert.Equal(t, color.RGBA{R: 255, G: 165, B: 0, A: 255}, c)
}

func TestSnapshotAfterRelease(t *testing.T) {
	g := NewGraph(10, 10, nil)
	g.AttachParts([]game.ResolvedAsset{{Name: "nose", Image: solidImage(4, 4, color.NRGBA{A: 255})}}, 10, 10)
	g.Release()

	snap := g.Snapshot(2)
	assert.Equal(t, image.Rect(0, 0, 20, 20), snap.Bounds())
	assert.Equal(t, color.RGBA{}, snap.RGBAAt(10, 10))
}

func TestBuildShadow(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{A: 255})
	shadow := buildShadow(src, 8, 0.3)

	require.Equal(t, image.Rect(0, 0, 20, 20), shadow.Bounds())

	center := shadow.NRGBAAt(10, 10)
	corner := shadow.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), center.R, "shadow is black")
	assert.Greater(t, center.A, uint8(0))
	assert.LessOrEqual(t, center.A, uint8(77))
	assert.Less(t, corner.A, center.A)

	// 无模糊时只乘以不透明度
	flat := buildShadow(src, 0, 0.5)
	assert.Equal(t, image.Rect(0, 0, 4, 4), flat.Bounds())
	assert.Equal(t, uint8(128), flat.NRGBAAt(1, 1).A)
}

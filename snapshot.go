package life

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// NRGBA converts the color to 8-bit components, clamping to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Snapshot draws a generation the way the render stage does, one pixel
// per cell: live cells in their gradient color over the background.
// Row y = 0 is at the bottom, as in clip space.
func Snapshot(cells []uint32, g Grid, background Color) (*image.NRGBA, error) {
	if len(cells) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d cells for grid %v", ErrStateSize, len(cells), g)
	}
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	bg := background.NRGBA()
	for y := range g.Height {
		for x := range g.Width {
			c := bg
			if cells[g.Index(x, y)] != 0 {
				c = g.CellColor(x, y).NRGBA()
			}
			img.SetNRGBA(x, g.Height-1-y, c)
		}
	}
	return img, nil
}

// Upscale enlarges img by an integer factor with nearest-neighbor
// sampling so cell edges stay sharp.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

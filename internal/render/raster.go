// Package render implements the scene drawing surface on an in-memory
// NRGBA framebuffer.
package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"pomodungeon/internal/scene/geom"
)

// Raster is a fixed-size framebuffer with a global alpha, drawn in logical
// pixels. Coordinates are truncated to whole pixels before drawing.
type Raster struct {
	img   *image.NRGBA
	alpha float64
}

// NewRaster allocates a transparent framebuffer.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:   image.NewNRGBA(image.Rect(0, 0, width, height)),
		alpha: 1,
	}
}

// Image returns the live framebuffer. Use Snapshot to hand a frame to
// another goroutine.
func (raster *Raster) Image() *image.NRGBA {
	return raster.img
}

// Snapshot copies the current frame.
func (raster *Raster) Snapshot() *image.NRGBA {
	clone := image.NewNRGBA(raster.img.Rect)
	copy(clone.Pix, raster.img.Pix)
	return clone
}

// Clear fills the whole buffer with an opaque colour, ignoring alpha.
func (raster *Raster) Clear(fill color.NRGBA) {
	for offset := 0; offset < len(raster.img.Pix); offset += 4 {
		raster.img.Pix[offset] = fill.R
		raster.img.Pix[offset+1] = fill.G
		raster.img.Pix[offset+2] = fill.B
		raster.img.Pix[offset+3] = fill.A
	}
}

// SetAlpha sets the global alpha applied to subsequent draws.
func (raster *Raster) SetAlpha(alpha float64) {
	raster.alpha = geom.Clamp(alpha, 0, 1)
}

// Alpha returns the global alpha.
func (raster *Raster) Alpha() float64 {
	return raster.alpha
}

// FillRect fills a rectangle, clipped to the buffer.
func (raster *Raster) FillRect(rect geom.Rect, fill color.NRGBA) {
	x0, y0 := int(rect.X), int(rect.Y)
	x1, y1 := x0+int(rect.W), y0+int(rect.H)
	bounds := raster.img.Rect.Intersect(image.Rect(x0, y0, x1, y1))
	if bounds.Empty() {
		return
	}
	strength := raster.alpha * float64(fill.A) / 255
	if strength <= 0 {
		return
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			raster.blend(x, y, fill, strength)
		}
	}
}

// FillEllipse fills an axis-aligned ellipse centred on (cx, cy).
func (raster *Raster) FillEllipse(cx, cy, rx, ry float64, fill color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	strength := raster.alpha * float64(fill.A) / 255
	if strength <= 0 {
		return
	}
	bounds := raster.img.Rect.Intersect(image.Rect(
		int(math.Floor(cx-rx)), int(math.Floor(cy-ry)),
		int(math.Ceil(cx+rx))+1, int(math.Ceil(cy+ry))+1,
	))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				raster.blend(x, y, fill, strength)
			}
		}
	}
}

// DrawImage scales the src region of img into dst with nearest-neighbour
// sampling, optionally mirrored horizontally. A nil image draws nothing.
func (raster *Raster) DrawImage(img image.Image, src image.Rectangle, dst geom.Rect, flip bool) {
	if img == nil || src.Empty() || dst.W < 1 || dst.H < 1 || raster.alpha <= 0 {
		return
	}
	target := image.Rect(int(dst.X), int(dst.Y), int(dst.X)+int(dst.W), int(dst.Y)+int(dst.H))
	if !target.Overlaps(raster.img.Rect) {
		return
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Rect, img, src, xdraw.Src, nil)
	if flip {
		mirror(scaled)
	}

	options := &xdraw.Options{}
	if raster.alpha < 1 {
		options.SrcMask = image.NewUniform(color.Alpha{A: uint8(math.Round(raster.alpha * 255))})
		options.SrcMaskP = image.Point{}
	}
	xdraw.Copy(raster.img, target.Min, scaled, scaled.Rect, xdraw.Over, options)
}

func (raster *Raster) blend(x, y int, fill color.NRGBA, strength float64) {
	offset := raster.img.PixOffset(x, y)
	pix := raster.img.Pix[offset : offset+4 : offset+4]
	inverse := 1 - strength
	pix[0] = uint8(math.Round(float64(fill.R)*strength + float64(pix[0])*inverse))
	pix[1] = uint8(math.Round(float64(fill.G)*strength + float64(pix[1])*inverse))
	pix[2] = uint8(math.Round(float64(fill.B)*strength + float64(pix[2])*inverse))
	pix[3] = uint8(math.Round(255*strength + float64(pix[3])*inverse))
}

func mirror(img *image.NRGBA) {
	width := img.Rect.Dx()
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for left, right := 0, width-1; left < right; left, right = left+1, right-1 {
			for channel := 0; channel < 4; channel++ {
				row[left*4+channel], row[right*4+channel] = row[right*4+channel], row[left*4+channel]
			}
		}
	}
}

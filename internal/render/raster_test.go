package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodungeon/internal/scene/geom"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func TestFillRectTruncatesAndClips(t *testing.T) {
	raster := NewRaster(8, 8)
	raster.Clear(black)

	raster.FillRect(geom.Rect{X: 1.7, Y: 2.2, W: 2.9, H: 1}, white)
	assert.Equal(t, white, raster.Image().NRGBAAt(1, 2))
	assert.Equal(t, white, raster.Image().NRGBAAt(2, 2))
	assert.Equal(t, black, raster.Image().NRGBAAt(3, 2))
	assert.Equal(t, black, raster.Image().NRGBAAt(1, 3))

	assert.NotPanics(t, func() {
		raster.FillRect(geom.Rect{X: -20, Y: -20, W: 100, H: 100}, red)
	})
	assert.Equal(t, red, raster.Image().NRGBAAt(7, 7))
}

func TestGlobalAlphaBlends(t *testing.T) {
	raster := NewRaster(2, 2)
	raster.Clear(black)
	raster.SetAlpha(0.5)
	raster.FillRect(geom.Rect{W: 1, H: 1}, white)

	pixel := raster.Image().NRGBAAt(0, 0)
	assert.InDelta(t, 128, int(pixel.R), 1)
	assert.Equal(t, uint8(255), pixel.A)

	raster.SetAlpha(5)
	assert.Equal(t, 1.0, raster.Alpha())
}

func TestFillEllipseStaysInsideBounds(t *testing.T) {
	raster := NewRaster(20, 20)
	raster.Clear(black)
	raster.FillEllipse(10, 10, 4, 2, white)

	assert.Equal(t, white, raster.Image().NRGBAAt(10, 10))
	assert.Equal(t, black, raster.Image().NRGBAAt(10, 14))
	assert.Equal(t, black, raster.Image().NRGBAAt(16, 10))
}

func TestDrawImageNearestNeighbourAndFlip(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		sheet.SetNRGBA(0, y, red)
		sheet.SetNRGBA(1, y, blue)
		sheet.SetNRGBA(2, y, white)
		sheet.SetNRGBA(3, y, white)
	}
	raster := NewRaster(8, 8)
	raster.Clear(black)

	raster.DrawImage(sheet, image.Rect(0, 0, 2, 2), geom.Rect{W: 4, H: 4}, false)
	assert.Equal(t, red, raster.Image().NRGBAAt(0, 0))
	assert.Equal(t, red, raster.Image().NRGBAAt(1, 3))
	assert.Equal(t, blue, raster.Image().NRGBAAt(2, 0))
	assert.Equal(t, black, raster.Image().NRGBAAt(4, 0))

	raster.DrawImage(sheet, image.Rect(0, 0, 2, 2), geom.Rect{X: 4, Y: 4, W: 4, H: 4}, true)
	assert.Equal(t, blue, raster.Image().NRGBAAt(4, 4))
	assert.Equal(t, red, raster.Image().NRGBAAt(7, 4))
}

func TestDrawNilImageIsNoop(t *testing.T) {
	raster := NewRaster(4, 4)
	raster.Clear(black)
	before := raster.Snapshot()

	raster.DrawImage(nil, image.Rect(0, 0, 2, 2), geom.Rect{W: 4, H: 4}, false)
	assert.Equal(t, before.Pix, raster.Image().Pix)
}

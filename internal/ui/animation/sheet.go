package animation

import (
	"image"
	"time"

	"pomodungeon/internal/scene"
)

// FrameDuration is how long each sprite frame is shown.
const FrameDuration = 120 * time.Millisecond

// Sheet is a horizontal strip of square sprite frames.
type Sheet struct {
	Image  image.Image
	Frames int
}

// NewSheet wraps an image; the frame count is its width over its height.
func NewSheet(img image.Image) *Sheet {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	frames := 1
	if bounds.Dy() > 0 && bounds.Dx()/bounds.Dy() > 1 {
		frames = bounds.Dx() / bounds.Dy()
	}
	return &Sheet{Image: img, Frames: frames}
}

// Frame returns the cell at index, clamped to the sheet. A nil sheet yields
// an empty frame, which the scene skips.
func (sheet *Sheet) Frame(index int) scene.Frame {
	if sheet == nil || sheet.Image == nil {
		return scene.Frame{}
	}
	if index < 0 {
		index = 0
	}
	if index >= sheet.Frames {
		index = sheet.Frames - 1
	}
	bounds := sheet.Image.Bounds()
	width := bounds.Dx() / sheet.Frames
	origin := image.Pt(bounds.Min.X+index*width, bounds.Min.Y)
	return scene.Frame{
		Image:  sheet.Image,
		Source: image.Rectangle{Min: origin, Max: origin.Add(image.Pt(width, bounds.Dy()))},
	}
}

// Loop returns the frame shown after elapsed time on a looping animation.
func (sheet *Sheet) Loop(elapsed time.Duration) scene.Frame {
	if sheet == nil {
		return scene.Frame{}
	}
	return sheet.Frame(sheet.index(elapsed))
}

// Duration is the time one pass over the sheet takes.
func (sheet *Sheet) Duration() time.Duration {
	if sheet == nil {
		return FrameDuration
	}
	return time.Duration(sheet.Frames) * FrameDuration
}

func (sheet *Sheet) index(elapsed time.Duration) int {
	if elapsed < 0 || sheet.Frames <= 1 {
		return 0
	}
	return int(elapsed/FrameDuration) % sheet.Frames
}

package scene

import (
	"image"
	"image/color"
	"time"

	"pomodungeon/internal/scene/geom"
)

// Surface is the drawing target of a frame, in logical pixels.
type Surface interface {
	FillRect(rect geom.Rect, fill color.NRGBA)
	FillEllipse(cx, cy, rx, ry float64, fill color.NRGBA)
	DrawImage(img image.Image, src image.Rectangle, dst geom.Rect, flip bool)
	SetAlpha(alpha float64)
}

// Frame is one cell of a sprite sheet. A nil Image is skipped.
type Frame struct {
	Image  image.Image
	Source image.Rectangle
}

// BattlePose is the sprite state of both combatants for one frame.
type BattlePose struct {
	Hero    Frame
	Monster Frame
	// HeroAdvance is how far the hero has run toward the monster, in [0,1].
	HeroAdvance float64
}

// Cast supplies sprites for the avatar and the battle view.
type Cast interface {
	// Pose returns the frames at scene time now, battle seconds into the
	// current fight. When moving is false the combatants idle in place.
	Pose(now, battle time.Duration, moving bool) BattlePose
	// Backdrop returns the battle room image, or nil.
	Backdrop() image.Image
}

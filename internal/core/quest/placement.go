package quest

import "math"

// Placement positions a quest scroll on the board, in percent of the board
// size, with a tilt in degrees.
type Placement struct {
	Left     float64
	Top      float64
	Rotation float64
}

// Place lays out the scroll at index among total scrolls. The jitter is
// derived from the task id so a scroll keeps its spot between redraws.
func Place(id string, index, total int) Placement {
	seed := 0
	for _, char := range id {
		seed += int(char)
	}
	if total < 1 {
		total = 1
	}

	cols := total
	if cols > 4 {
		cols = 4
	}
	col := index % cols
	row := index / cols

	baseX := 10 + float64(col)*(80/math.Max(float64(cols-1), 1))
	baseY := 8 + float64(row)*35

	offsetX := float64((seed*17)%30 - 15)
	offsetY := float64((seed*23)%20 - 10)
	rotation := float64((seed*7)%12 - 6)

	return Placement{
		Left:     math.Max(5, math.Min(75, baseX+offsetX)),
		Top:      math.Max(5, math.Min(65, baseY+offsetY)),
		Rotation: rotation,
	}
}

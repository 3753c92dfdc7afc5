package tracking

import (
	"github.com/go-vgo/robotgo"
)

// PointerSample is one polled pointer position.
type PointerSample struct {
	X int
	Y int
	// MovingRight is set when X is greater than the previous sample's X.
	MovingRight bool
}

// Delta returns the per-axis absolute displacement from prev to s.
func (s PointerSample) Delta(prev PointerSample) (dx, dy int) {
	return abs(s.X - prev.X), abs(s.Y - prev.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Pointer reports the current pointer position in screen coordinates.
type Pointer interface {
	Position() (x, y int)
}

// RobotgoPointer polls the system pointer through robotgo.
type RobotgoPointer struct{}

func (RobotgoPointer) Position() (int, int) {
	return robotgo.Location()
}

// Sample reads p and derives the direction flag against prev.
func Sample(p Pointer, prev PointerSample) PointerSample {
	x, y := p.Position()
	return PointerSample{X: x, Y: y, MovingRight: x > prev.X}
}

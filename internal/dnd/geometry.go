// Package dnd implements the drag-and-drop reordering engine behind the
// board TUI: a layout registry of last-measured geometry, a pointer
// hit-tester, an edge auto-scroll policy, the drag state machine, and the
// pure commit transform that produces new dense card orderings.
//
// The engine is not safe for concurrent use. All mutation must happen from
// a single serialized tick context (in this app, the Bubble Tea update
// loop); other contexts receive data only through the hook callbacks.
package dnd

// Point is a position in content space (units are terminal cells in the
// TUI host, but the engine only assumes a consistent unit).
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in content space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// MidY is the vertical midpoint, the reference line for insertion slots.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

func (r Rect) ContainsY(y float64) bool {
	return y >= r.Y && y < r.Y+r.Height
}

package dnd

// AutoScroll computes edge-proximity scroll deltas while a drag is live.
// Inside the top zone the delta is negative and grows as the pointer nears
// the edge; symmetric at the bottom; zero elsewhere. The scroll container
// clamps to content bounds itself, so the controller does not.
type AutoScroll struct {
	// Zone is the depth of the edge-proximity band, in content units.
	Zone float64
	// Gain scales (Zone - distanceFromEdge) into a per-tick delta.
	Gain float64
}

// DefaultAutoScroll matches the stock edge policy.
var DefaultAutoScroll = AutoScroll{Zone: 80, Gain: 0.15}

// Delta returns the scroll delta for one tick given the pointer position
// and the viewport's on-screen rect. Both are in the same coordinate
// space; only Y matters.
func (a AutoScroll) Delta(pointerY float64, viewport Rect) float64 {
	if a.Zone <= 0 || a.Gain <= 0 {
		return 0
	}
	fromTop := pointerY - viewport.Top()
	fromBottom := viewport.Bottom() - pointerY
	if fromTop < a.Zone && fromTop <= fromBottom {
		if fromTop < 0 {
			fromTop = 0
		}
		return -(a.Zone - fromTop) * a.Gain
	}
	if fromBottom < a.Zone {
		if fromBottom < 0 {
			fromBottom = 0
		}
		return (a.Zone - fromBottom) * a.Gain
	}
	return 0
}

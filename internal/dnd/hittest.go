package dnd

// Target is a hit-test result: the lane under the pointer and the
// insertion slot within it. LaneID == "" with Index == -1 means the
// pointer is over no droppable lane.
type Target struct {
	LaneID string
	Index  int
}

// NoTarget is the miss result. Missing layout is expected (a row may not
// have been measured yet) and maps here rather than to an error.
var NoTarget = Target{LaneID: "", Index: -1}

// HitTest maps an absolute pointer Y to the lane and insertion slot under
// it, using the freshest registry state. draggedItemID is excluded from
// all geometry: the ghost's own row must not influence where it can land.
//
// A lane's effective extent is re-derived from its items' extents when it
// has any (container measurements can lag behind height animations); an
// empty lane falls back to its own measured rect so it remains droppable.
func (r *Registry) HitTest(pointerY float64, draggedItemID string) Target {
	lane, items, ok := r.laneUnder(pointerY, draggedItemID)
	if !ok {
		return NoTarget
	}

	// Insertion slot: number of rows whose midpoint is strictly above the
	// pointer. Equality inserts before the row, so increasing pointerY
	// never decreases the returned index.
	idx := 0
	for _, it := range items {
		if it.Rect.MidY() < pointerY {
			idx++
		}
	}
	return Target{LaneID: lane.LaneID, Index: idx}
}

// laneUnder finds the candidate lane for pointerY and returns its items
// (already sorted by Y, dragged item excluded).
func (r *Registry) laneUnder(pointerY float64, draggedItemID string) (LaneLayout, []ItemLayout, bool) {
	for _, lane := range r.Lanes() {
		items := r.laneItemsExcluding(lane.LaneID, draggedItemID)
		top, bottom := lane.Rect.Top(), lane.Rect.Bottom()
		if len(items) > 0 {
			top = items[0].Rect.Top()
			bottom = items[0].Rect.Bottom()
			for _, it := range items[1:] {
				if it.Rect.Top() < top {
					top = it.Rect.Top()
				}
				if it.Rect.Bottom() > bottom {
					bottom = it.Rect.Bottom()
				}
			}
		}
		if pointerY >= top && pointerY < bottom {
			return lane, items, true
		}
	}
	return LaneLayout{}, nil, false
}

func (r *Registry) laneItemsExcluding(laneID, draggedItemID string) []ItemLayout {
	all := r.Items(laneID)
	out := all[:0]
	for _, it := range all {
		if it.ItemID == draggedItemID {
			continue
		}
		out = append(out, it)
	}
	return out
}

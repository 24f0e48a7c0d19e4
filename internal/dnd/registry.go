package dnd

import "sort"

// ItemLayout is the last measured extent of one card row.
type ItemLayout struct {
	ItemID string
	LaneID string
	Rect   Rect
	Order  int
}

// LaneLayout is the last measured extent of one lane container, together
// with the scroll offset in effect at measure time. Measurement and
// hit-testing can be separated by an intervening scroll, so the offset is
// recorded rather than assumed.
type LaneLayout struct {
	LaneID       string
	Rect         Rect
	ScrollOffset float64
}

// Registry holds the last-known geometry of every card and lane. Every
// register call is an idempotent upsert keyed by ID: stale entries are
// overwritten in place and never accumulate. The registry tolerates
// registrations for items the logical board no longer contains (layout
// callbacks can arrive after a deletion); callers prune with RemoveItem
// when they remove a card.
type Registry struct {
	items map[string]ItemLayout
	lanes map[string]LaneLayout
}

func NewRegistry() *Registry {
	return &Registry{
		items: map[string]ItemLayout{},
		lanes: map[string]LaneLayout{},
	}
}

// RegisterItem records the current geometry of one card. Last registration
// wins; subsequent hit-tests see the new rect immediately.
func (r *Registry) RegisterItem(itemID, laneID string, rect Rect, order int) {
	r.items[itemID] = ItemLayout{ItemID: itemID, LaneID: laneID, Rect: rect, Order: order}
}

// RegisterLane records the current geometry of one lane container.
func (r *Registry) RegisterLane(laneID string, rect Rect, scrollOffset float64) {
	r.lanes[laneID] = LaneLayout{LaneID: laneID, Rect: rect, ScrollOffset: scrollOffset}
}

func (r *Registry) RemoveItem(itemID string) { delete(r.items, itemID) }
func (r *Registry) RemoveLane(laneID string) { delete(r.lanes, laneID) }

func (r *Registry) Item(itemID string) (ItemLayout, bool) {
	it, ok := r.items[itemID]
	return it, ok
}

func (r *Registry) Lane(laneID string) (LaneLayout, bool) {
	l, ok := r.lanes[laneID]
	return l, ok
}

// Items returns the registered items of one lane sorted by vertical
// position. laneID == "" returns every item. The slice is a snapshot;
// later registrations do not mutate it.
func (r *Registry) Items(laneID string) []ItemLayout {
	out := make([]ItemLayout, 0, len(r.items))
	for _, it := range r.items {
		if laneID != "" && it.LaneID != laneID {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rect.Y != out[j].Rect.Y {
			return out[i].Rect.Y < out[j].Rect.Y
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

// Lanes returns every registered lane sorted by vertical position.
func (r *Registry) Lanes() []LaneLayout {
	out := make([]LaneLayout, 0, len(r.lanes))
	for _, l := range r.lanes {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rect.Y != out[j].Rect.Y {
			return out[i].Rect.Y < out[j].Rect.Y
		}
		return out[i].LaneID < out[j].LaneID
	})
	return out
}

// Clone returns an independent copy. Settling snapshots the registry with
// this so the settle animation and the eventual commit agree on one
// consistent geometry even if layout changes mid-animation.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for k, v := range r.items {
		c.items[k] = v
	}
	for k, v := range r.lanes {
		c.lanes[k] = v
	}
	return c
}

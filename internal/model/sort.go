package model

import "sort"

// SortCards sorts cards in place by Order, then CreatedAt, then ID.
// The secondary keys only matter for unsettled input (duplicate orders
// mid-migration); a settled lane is fully determined by Order.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return compareCards(cards[i], cards[j]) < 0
	})
}

func compareCards(a, b Card) int {
	if a.Order != b.Order {
		if a.Order < b.Order {
			return -1
		}
		return 1
	}
	if a.CreatedAt.Before(b.CreatedAt) {
		return -1
	}
	if a.CreatedAt.After(b.CreatedAt) {
		return 1
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}

// SortLanes sorts lanes in place by Order, then CreatedAt, then ID.
func SortLanes(lanes []Lane) {
	sort.SliceStable(lanes, func(i, j int) bool {
		a, b := lanes[i], lanes[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

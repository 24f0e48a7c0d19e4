package dnd

import (
	"errors"

	"dragboard-cli/internal/model"
)

// Commit applies a completed drag to the card collection: either a
// same-lane reorder or a cross-lane move of itemID into targetLaneID at
// targetIndex. It is a pure transform: the input slice is never mutated,
// and the returned collection is fully consistent — for every lane the
// order values form a dense 0..n-1 permutation. targetIndex is clamped to
// [0, len] (index drift from concurrent geometry changes is normal, not an
// error). A same-lane move to the current position is a no-op that still
// returns a dense collection.
func Commit(cards []model.Card, itemID, sourceLaneID, targetLaneID string, targetIndex int) ([]model.Card, error) {
	if itemID == "" {
		return nil, errors.New("commit: missing item id")
	}
	if targetLaneID == "" {
		return nil, errors.New("commit: missing target lane id")
	}

	out := make([]model.Card, len(cards))
	copy(out, cards)

	moved := -1
	for i := range out {
		if out[i].ID == itemID {
			moved = i
			break
		}
	}
	if moved < 0 {
		return nil, errors.New("commit: item not in collection")
	}

	out[moved].LaneID = targetLaneID

	if sourceLaneID == targetLaneID {
		renumberLane(out, targetLaneID, itemID, targetIndex)
		return out, nil
	}

	// Cross-lane: close the gap in the source, then insert into the target.
	// Both renumberings complete before returning, so no reader ever sees a
	// half-updated collection.
	renumberLane(out, sourceLaneID, "", -1)
	renumberLane(out, targetLaneID, itemID, targetIndex)
	return out, nil
}

// renumberLane rewrites the order fields of one lane's members to a dense
// 0..n-1 sequence. When insertID is non-empty, that member is positioned
// at insertAt (clamped) and the rest keep their relative order.
func renumberLane(cards []model.Card, laneID, insertID string, insertAt int) {
	idxs := make([]int, 0, len(cards))
	movedIdx := -1
	for i := range cards {
		if cards[i].LaneID != laneID {
			continue
		}
		if cards[i].ID == insertID {
			movedIdx = i
			continue
		}
		idxs = append(idxs, i)
	}

	// Relative order of the untouched members comes from their current
	// order fields (settled lanes: dense and unique).
	sortByCard(cards, idxs)

	if movedIdx >= 0 {
		if insertAt < 0 {
			insertAt = 0
		}
		if insertAt > len(idxs) {
			insertAt = len(idxs)
		}
		idxs = append(idxs, 0)
		copy(idxs[insertAt+1:], idxs[insertAt:])
		idxs[insertAt] = movedIdx
	}

	for pos, i := range idxs {
		cards[i].Order = pos
	}
}

func sortByCard(cards []model.Card, idxs []int) {
	// Insertion sort; lanes are small and the input is usually sorted.
	for i := 1; i < len(idxs); i++ {
		for j := i; j > 0 && cardLess(cards[idxs[j]], cards[idxs[j-1]]); j-- {
			idxs[j], idxs[j-1] = idxs[j-1], idxs[j]
		}
	}
}

func cardLess(a, b model.Card) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

package model

import "time"

// Lane is one vertical section of the board. Lanes themselves are ordered
// top-to-bottom by Order (dense 0..n-1).
type Lane struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// Card is one draggable row. Within a lane, Order values form a dense
// 0..n-1 permutation whenever the board is settled (no commit in flight).
type Card struct {
	ID     string `json:"id"`
	LaneID string `json:"laneId"`
	Order  int    `json:"order"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Board struct {
	Lanes []Lane `json:"lanes"`
	Cards []Card `json:"cards"`
}

func (b *Board) FindCard(id string) (*Card, bool) {
	for i := range b.Cards {
		if b.Cards[i].ID == id {
			return &b.Cards[i], true
		}
	}
	return nil, false
}

func (b *Board) FindLane(id string) (*Lane, bool) {
	for i := range b.Lanes {
		if b.Lanes[i].ID == id {
			return &b.Lanes[i], true
		}
	}
	return nil, false
}

// LaneCards returns the cards of one lane sorted by Order (ties broken by
// CreatedAt, then ID, so unsettled input still yields a stable sequence).
func (b *Board) LaneCards(laneID string) []Card {
	var out []Card
	for _, c := range b.Cards {
		if c.LaneID == laneID {
			out = append(out, c)
		}
	}
	SortCards(out)
	return out
}

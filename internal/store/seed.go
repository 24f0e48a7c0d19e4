package store

import (
	"context"
	"time"

	"dragboard-cli/internal/model"
)

// SeedBoard returns the demo board used by `dragboard init`.
func SeedBoard(now time.Time) *model.Board {
	lane := func(id, title string, order int) model.Lane {
		return model.Lane{ID: id, Title: title, Order: order, CreatedAt: now}
	}
	card := func(id, laneID string, order int, title, desc string) model.Card {
		return model.Card{
			ID: id, LaneID: laneID, Order: order,
			Title: title, Description: desc,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	return &model.Board{
		Lanes: []model.Lane{
			lane("lane-backlog", "Backlog", 0),
			lane("lane-doing", "Doing", 1),
			lane("lane-done", "Done", 2),
		},
		Cards: []model.Card{
			card("card-plan", "lane-backlog", 0, "Sketch the release plan",
				"List the milestones and rough dates.\n\n- scope\n- owners\n- risks"),
			card("card-docs", "lane-backlog", 1, "Update onboarding docs",
				"The setup section still references the old workspace layout."),
			card("card-triage", "lane-backlog", 2, "Triage open bug reports",
				"Close duplicates, label the rest."),
			card("card-review", "lane-doing", 0, "Review the storage patch",
				"Focus on the migration path; the schema change is the risky part."),
			card("card-bench", "lane-doing", 1, "Benchmark the import path",
				"Compare against last release on the big fixture."),
			card("card-ship", "lane-done", 0, "Ship 0.3.1",
				"Tagged and announced."),
		},
	}
}

// Init seeds a fresh workspace. It refuses to overwrite an existing board.
func (s Store) Init(ctx context.Context, now time.Time) error {
	b, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if len(b.Lanes) > 0 || len(b.Cards) > 0 {
		return ErrAlreadyInitialized
	}
	return s.Save(ctx, SeedBoard(now))
}

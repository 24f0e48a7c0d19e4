package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dragboard-cli/internal/dnd"

	"github.com/spf13/cobra"
)

// newMoveCmd reorders or moves a card from a script, through the same
// commit transform the TUI drag uses.
func newMoveCmd(app *App) *cobra.Command {
	var lane string
	var index int
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card to a lane/index (same transform as a drag)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			c, ok := b.FindCard(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("card not found: %s", id))
			}
			target := lane
			if target == "" {
				target = c.LaneID
			}
			if _, ok := b.FindLane(target); !ok {
				return writeErr(cmd, fmt.Errorf("lane not found: %s", target))
			}
			if index < 0 {
				return writeErr(cmd, errors.New("--index must be >= 0"))
			}

			cards, err := dnd.Commit(b.Cards, id, c.LaneID, target, index)
			if err != nil {
				return writeErr(cmd, err)
			}
			b.Cards = cards
			if mc, ok := b.FindCard(id); ok {
				mc.UpdatedAt = time.Now().UTC()
			}
			if err := s.Save(context.Background(), b); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"status": "moved",
				"card":   id,
				"lane":   target,
			})
		},
	}
	cmd.Flags().StringVar(&lane, "lane", "", "Target lane id (default: the card's current lane)")
	cmd.Flags().IntVar(&index, "index", 0, "Insertion index within the target lane (after removing the card)")
	return cmd
}

package cli

import (
	"context"
	"time"

	"dragboard-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed a demo board in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dir == "" {
				if _, _, err := loadBoard(app); err != nil {
					return writeErr(cmd, err)
				}
			}
			s := store.Store{Dir: app.Dir}
			if err := s.Init(context.Background(), time.Now().UTC()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "initialized", "dir": app.Dir})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, b)
		},
	}
}

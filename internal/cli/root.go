// Package cli wires the cobra command surface: the interactive TUI by
// default, plus scriptable board commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dragboard-cli/internal/model"
	"dragboard-cli/internal/store"
	"dragboard-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dragboard",
		Short:        "Local-first board with mouse drag-and-drop reordering",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board (drag cards with the mouse)
  dragboard

  # Scriptable commands
  dragboard init
  dragboard show
  dragboard move card-plan --lane lane-doing --index 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DRAGBOARD_DIR", ""), "Path to the workspace dir (default: ~/.dragboard)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newMoveCmd(app))

	return cmd
}

func runTUI(app *App) error {
	b, s, err := loadBoard(app)
	if err != nil {
		return err
	}
	return tui.Run(s, b)
}

func loadBoard(app *App) (*model.Board, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = filepath.Join(home, ".dragboard")
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	b, err := s.Load(context.Background())
	if err != nil {
		return nil, s, err
	}
	return b, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

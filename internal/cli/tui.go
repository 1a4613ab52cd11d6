package cli

import (
	"kanban-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	changes := tui.NewNotifier()
	b, err := openBoard(cmd.Context(), app, changes.Notify)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = b.Close() }()
	if err := tui.Run(b.sess, changes, tui.Options{Glyphs: app.cfg.TUI.Glyphs}); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

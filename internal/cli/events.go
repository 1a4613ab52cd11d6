package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent board history (sqlite backend only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return writeErr(cmd, errors.New("--limit must be positive"))
			}
			return withBoard(cmd, app, func(b *board) error {
				evs, err := b.gw.TailEvents(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (newest last)")
	return cmd
}

package cli

import (
	"fmt"

	"kanban-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		filters filterFlags
		render  bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rendered board as Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				filters.apply(b)
				md := tui.BoardMarkdown(b.sess.Snapshot())
				if render {
					md = tui.RenderMarkdown(md, width)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			})
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "Render for the terminal (glamour) instead of raw Markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width for --render")
	return cmd
}

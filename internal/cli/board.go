package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// filterFlags are the three filter axes shared by `board show` and `export`.
type filterFlags struct {
	text     string
	category string
	project  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "Case-insensitive substring filter on card titles")
	cmd.Flags().StringVar(&f.category, "category", "", "Category id filter (\"all\" = no restriction)")
	cmd.Flags().StringVar(&f.project, "project", "", "Show only lists with this title (\"all\" = every list)")
}

func (f filterFlags) apply(b *board) {
	b.sess.SetTextFilter(f.text)
	b.sess.FlushTextFilter()
	b.sess.SetCategoryFilter(f.category)
	b.sess.SetProjectFilter(f.project)
}

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Whole-board commands",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(newBoardStateCmd(app))
	cmd.AddCommand(newBoardResetCmd(app))
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the rendered board (filters applied)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				filters.apply(b)
				return writeOut(cmd, app, map[string]any{"data": b.sess.Snapshot()})
			})
		},
	}
	filters.register(cmd)
	return cmd
}

func newBoardStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the persisted board (lists, cards, categories)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				return writeOut(cmd, app, map[string]any{"data": b.sess.Board()})
			})
		},
	}
	return cmd
}

func newBoardResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the board with a fresh one (single \"To Do\" list)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("board reset deletes every list and card; pass --yes to confirm"))
			}
			return withBoard(cmd, app, func(b *board) error {
				if err := b.sess.Reset(); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": b.sess.Board()})
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

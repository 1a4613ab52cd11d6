package cli

import (
	"strings"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/model"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List (column) commands",
	}
	cmd.AddCommand(newListsAddCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsRmCmd(app))
	cmd.AddCommand(newListsShowCmd(app))
	cmd.AddCommand(newListsListCmd(app))
	cmd.AddCommand(newListsMoveCmd(app))
	return cmd
}

func newListsAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a list (blank title => \"New List\")",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				id, err := b.sess.AddList(title)
				if err != nil {
					return err
				}
				bd := b.sess.Board()
				l, _, _ := bd.FindList(id)
				return writeOut(cmd, app, map[string]any{"data": l})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "List title")
	return cmd
}

func newListsRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <list-id>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errRequired("title"))
			}
			return withBoard(cmd, app, func(b *board) error {
				if _, ok := findList(b, id); !ok {
					return errNotFound("list", id)
				}
				if _, err := b.sess.RenameList(id, title); err != nil {
					return err
				}
				l, _ := findList(b, id)
				return writeOut(cmd, app, map[string]any{"data": l})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <list-id>",
		Short: "Delete a list and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				removed, err := b.sess.RemoveList(id)
				if err != nil {
					return err
				}
				if !removed {
					return errNotFound("list", id)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"id":      id,
					"deleted": true,
					"lists":   b.sess.Board().Lists,
				}})
			})
		},
	}
	return cmd
}

func newListsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show a list with its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				l, ok := findList(b, id)
				if !ok {
					return errNotFound("list", id)
				}
				return writeOut(cmd, app, map[string]any{"data": l})
			})
		},
	}
	return cmd
}

func newListsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all lists in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				return writeOut(cmd, app, map[string]any{"data": b.sess.Board().Lists})
			})
		},
	}
	return cmd
}

func newListsMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <list-id>",
		Short: "Move a list to a new position (drag session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				if _, ok := findList(b, id); !ok {
					return errNotFound("list", id)
				}
				if err := b.sess.BeginDrag(drag.KindList, id, false); err != nil {
					return err
				}
				boxes := drag.Stack(b.sess.Snapshot().ListIDs())
				b.sess.UpdateDragPosition(drag.Hover{
					Pointer: drag.SlotPointer(boxes, id, slotIndex(index, len(boxes))),
					Boxes:   boxes,
				})
				if err := b.sess.CommitDrag(); err != nil {
					return err
				}
				bd := b.sess.Board()
				_, pos, _ := bd.FindList(id)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"id":    id,
					"index": pos,
					"order": b.sess.Snapshot().ListIDs(),
				}})
			})
		},
	}
	cmd.Flags().IntVar(&index, "index", -1, "Target position (0-based; negative = last)")
	return cmd
}

func findList(b *board, id string) (model.List, bool) {
	bd := b.sess.Board()
	l, _, ok := bd.FindList(id)
	if !ok {
		return model.List{}, false
	}
	return *l, true
}

// slotIndex maps a user index onto a drop slot among n boxes; negative means last.
func slotIndex(index, n int) int {
	if index < 0 || index >= n {
		return n
	}
	return index
}

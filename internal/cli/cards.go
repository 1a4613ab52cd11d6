package cli

import (
	"strings"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/model"
	"kanban-cli/internal/viewsync"

	"github.com/spf13/cobra"
)

type cardOut struct {
	model.Card
	ListID string `json:"listId"`
	Index  int    `json:"index"`
}

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Card commands",
	}
	cmd.AddCommand(newCardsAddCmd(app))
	cmd.AddCommand(newCardsEditCmd(app))
	cmd.AddCommand(newCardsRmCmd(app))
	cmd.AddCommand(newCardsUntagCmd(app))
	cmd.AddCommand(newCardsShowCmd(app))
	cmd.AddCommand(newCardsMoveCmd(app))
	return cmd
}

func newCardsAddCmd(app *App) *cobra.Command {
	var (
		listID     string
		title      string
		categoryID string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a card to a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			listID = strings.TrimSpace(listID)
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errRequired("title"))
			}
			return withBoard(cmd, app, func(b *board) error {
				if _, ok := findList(b, listID); !ok {
					return errNotFound("list", listID)
				}
				id, err := b.sess.AddCard(listID, title, strings.TrimSpace(categoryID))
				if err != nil {
					return err
				}
				c, _ := findCard(b, id)
				return writeOut(cmd, app, map[string]any{"data": c})
			})
		},
	}
	cmd.Flags().StringVar(&listID, "list", "", "List id")
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (optional)")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCardsEditCmd(app *App) *cobra.Command {
	var (
		title      string
		categoryID string
	)

	cmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Change a card's title and/or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			titleSet := cmd.Flags().Changed("title")
			if titleSet && strings.TrimSpace(title) == "" {
				return writeErr(cmd, errRequired("title"))
			}
			return withBoard(cmd, app, func(b *board) error {
				cur, ok := findCard(b, id)
				if !ok {
					return errNotFound("card", id)
				}
				nextTitle, nextCat := cur.Title, cur.CategoryID
				if titleSet {
					nextTitle = title
				}
				if cmd.Flags().Changed("category") {
					nextCat = strings.TrimSpace(categoryID)
				}
				if _, err := b.sess.EditCard(id, nextTitle, nextCat); err != nil {
					return err
				}
				c, _ := findCard(b, id)
				return writeOut(cmd, app, map[string]any{"data": c})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (empty clears it)")
	return cmd
}

func newCardsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				removed, err := b.sess.RemoveCard(id)
				if err != nil {
					return err
				}
				if !removed {
					return errNotFound("card", id)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
			})
		},
	}
	return cmd
}

func newCardsUntagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "untag <card-id>",
		Short: "Clear a card's category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				if _, ok := findCard(b, id); !ok {
					return errNotFound("card", id)
				}
				if _, err := b.sess.ClearCardCategory(id); err != nil {
					return err
				}
				c, _ := findCard(b, id)
				return writeOut(cmd, app, map[string]any{"data": c})
			})
		},
	}
	return cmd
}

func newCardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				c, ok := findCard(b, id)
				if !ok {
					return errNotFound("card", id)
				}
				return writeOut(cmd, app, map[string]any{"data": c})
			})
		},
	}
	return cmd
}

func newCardsMoveCmd(app *App) *cobra.Command {
	var (
		to    string
		index int
	)

	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card within or across lists (drag session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				cur, ok := findCard(b, id)
				if !ok {
					return errNotFound("card", id)
				}
				target := strings.TrimSpace(to)
				if target == "" {
					target = cur.ListID
				}
				if _, ok := findList(b, target); !ok {
					return errNotFound("list", target)
				}

				if err := b.sess.BeginDrag(drag.KindCard, id, false); err != nil {
					return err
				}
				boxes := drag.Stack(renderedCardIDs(b.sess.Snapshot(), target))
				b.sess.UpdateDragPosition(drag.Hover{
					ListID:  target,
					Pointer: drag.SlotPointer(boxes, id, slotIndex(index, len(boxes))),
					Boxes:   boxes,
				})
				if err := b.sess.CommitDrag(); err != nil {
					return err
				}
				c, _ := findCard(b, id)
				return writeOut(cmd, app, map[string]any{"data": c})
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Target list id (default: the card's current list)")
	cmd.Flags().IntVar(&index, "index", -1, "Target position in the list (0-based; negative = last)")
	return cmd
}

func findCard(b *board, id string) (cardOut, bool) {
	bd := b.sess.Board()
	c, l, idx, ok := bd.FindCard(id)
	if !ok {
		return cardOut{}, false
	}
	return cardOut{Card: *c, ListID: l.ID, Index: idx}, true
}

func renderedCardIDs(snap viewsync.Snapshot, listID string) []string {
	for _, l := range snap.Lists {
		if l.ID != listID {
			continue
		}
		ids := make([]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			ids = append(ids, c.ID)
		}
		return ids
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category (card tag) commands",
	}
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesRmCmd(app))
	cmd.AddCommand(newCategoriesListCmd(app))
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category (names are unique, case-insensitive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return writeErr(cmd, errRequired("name"))
			}
			return withBoard(cmd, app, func(b *board) error {
				id, err := b.sess.AddCategory(name)
				if err != nil {
					return err
				}
				if id == "" {
					return fmt.Errorf("category already exists: %s", name)
				}
				for _, c := range b.sess.Board().Categories {
					if c.ID == id {
						return writeOut(cmd, app, map[string]any{"data": c})
					}
				}
				return errNotFound("category", id)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Category name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <category-id>",
		Short: "Delete a category and untag its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withBoard(cmd, app, func(b *board) error {
				removed, err := b.sess.RemoveCategory(id)
				if err != nil {
					return err
				}
				if !removed {
					return errNotFound("category", id)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
			})
		},
	}
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, app, func(b *board) error {
				return writeOut(cmd, app, map[string]any{"data": b.sess.Board().Categories})
			})
		},
	}
	return cmd
}

package mutate

import (
	"strings"

	"kanban-cli/internal/model"
)

// AddCategory inserts a category whose name is unique case-insensitively.
func AddCategory(b *model.Board, newID IDFunc, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, errBlank("category name")
	}
	if existing, ok := b.FindCategoryByName(name); ok {
		return model.Category{}, DuplicateError{Kind: "category", Name: existing.Name}
	}
	c := model.Category{ID: newID("cat"), Name: name}
	b.Categories = append(b.Categories, c)
	return c, nil
}

type RemoveCategoryResult struct {
	Category model.Category
	// ClearedCardIDs are the cards whose category reference was reset to "".
	ClearedCardIDs []string
}

// RemoveCategory deletes a category and clears it from every card. Cards are never deleted.
func RemoveCategory(b *model.Board, id string) (RemoveCategoryResult, error) {
	idx := -1
	for i := range b.Categories {
		if b.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RemoveCategoryResult{}, NotFoundError{Kind: "category", ID: id}
	}
	res := RemoveCategoryResult{Category: b.Categories[idx], ClearedCardIDs: []string{}}
	b.Categories = append(b.Categories[:idx:idx], b.Categories[idx+1:]...)
	for li := range b.Lists {
		for ci := range b.Lists[li].Cards {
			c := &b.Lists[li].Cards[ci]
			if c.CategoryID == id {
				c.CategoryID = ""
				res.ClearedCardIDs = append(res.ClearedCardIDs, c.ID)
			}
		}
	}
	return res, nil
}

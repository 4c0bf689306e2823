// Package storage implements the record store: durable CRUD over the three
// tables (categories, subcategories, items) with no interpretation of field
// meaning. Mode semantics live entirely in internal/modes.
package storage

import (
	"context"

	"github.com/matheob255/life-hub/internal/core"
)

// Store is the persistence contract the services layer programs against.
// Implementations enforce structural constraints only (non-empty title,
// valid parent references); they never validate field semantics.
//
// Deleting a category or subcategory cascades to all descendant rows. That
// is a deliberate policy choice, covered by tests.
type Store interface {
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	DeleteCategory(ctx context.Context, id int64) error
	// SubcategoryCounts returns the number of subcategories per category.
	SubcategoryCounts(ctx context.Context) (map[int64]int, error)

	CreateSubcategory(ctx context.Context, s core.Subcategory) (core.Subcategory, error)
	GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error)
	// ListSubcategoriesByMode spans all categories; the digest worker uses
	// it to find every recurring-dates subcategory.
	ListSubcategoriesByMode(ctx context.Context, mode core.Mode) ([]core.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item core.Item) (core.Item, error)
	GetItem(ctx context.Context, id int64) (core.Item, error)
	ListItems(ctx context.Context, subcategoryID int64) ([]core.Item, error)
	// ListItemsByValue filters on exact Value equality. The budget
	// interpreter relies on it to select one month's transactions via the
	// denormalized month key, so the store needs no date-range queries.
	ListItemsByValue(ctx context.Context, subcategoryID int64, value string) ([]core.Item, error)
	UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) error
	DeleteItem(ctx context.Context, id int64) error

	Close() error
}

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matheob255/life-hub/internal/core"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "lifehub.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func mustCategory(t *testing.T, s Store, name string) core.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), core.Category{Name: name, Icon: "star"})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func mustSubcategory(t *testing.T, s Store, categoryID int64, name string, mode core.Mode) core.Subcategory {
	t.Helper()
	sub, err := s.CreateSubcategory(context.Background(), core.Subcategory{
		CategoryID: categoryID, Name: name, Mode: mode,
	})
	if err != nil {
		t.Fatalf("create subcategory %q: %v", name, err)
	}
	return sub
}

func TestCategoryRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := mustCategory(t, s, "Running")
			mustCategory(t, s, "Piano")

			cats, err := s.ListCategories(ctx)
			if err != nil {
				t.Fatalf("list categories: %v", err)
			}
			if len(cats) != 2 {
				t.Fatalf("got %d categories, want 2", len(cats))
			}
			if cats[0].Name != "Running" || cats[0].Icon != "star" {
				t.Errorf("unexpected first category: %+v", cats[0])
			}

			n, err := s.CountCategories(ctx)
			if err != nil || n != 2 {
				t.Errorf("count = %d (err %v), want 2", n, err)
			}

			if err := s.DeleteCategory(ctx, first.ID); err != nil {
				t.Fatalf("delete category: %v", err)
			}
			if err := s.DeleteCategory(ctx, first.ID); !errors.Is(err, core.ErrNotFound) {
				t.Errorf("second delete err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestCreateCategoryEmptyName(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateCategory(context.Background(), core.Category{Name: "   "})
			if !errors.Is(err, core.ErrEmptyName) {
				t.Errorf("err = %v, want ErrEmptyName", err)
			}
		})
	}
}

func TestSubcategoryColumnsSurviveRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cat := mustCategory(t, s, "Research")
			created, err := s.CreateSubcategory(ctx, core.Subcategory{
				CategoryID: cat.ID,
				Name:       "Movies",
				Mode:       core.ModeTabular,
				Columns: []core.Column{
					{Key: "c1", Label: "Title", Width: 2},
					{Key: "c2", Label: "Year"},
					{Key: "c3", Label: "Rating"},
				},
			})
			if err != nil {
				t.Fatalf("create subcategory: %v", err)
			}

			got, err := s.GetSubcategory(ctx, created.ID)
			if err != nil {
				t.Fatalf("get subcategory: %v", err)
			}
			if len(got.Columns) != 3 || got.Columns[0].Label != "Title" || got.Columns[0].Width != 2 {
				t.Errorf("columns did not round-trip: %+v", got.Columns)
			}
		})
	}
}

func TestCreateSubcategoryRejectsUnknownMode(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			cat := mustCategory(t, s, "Daily")
			_, err := s.CreateSubcategory(context.Background(), core.Subcategory{
				CategoryID: cat.ID, Name: "Stuff", Mode: "kanban",
			})
			if !errors.Is(err, core.ErrInvalidMode) {
				t.Errorf("err = %v, want ErrInvalidMode", err)
			}
		})
	}
}

func TestCascadeDelete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cat := mustCategory(t, s, "Nutrition")
			sub := mustSubcategory(t, s, cat.ID, "Groceries", core.ModeChecklist)
			if _, err := s.CreateItem(ctx, core.Item{SubcategoryID: sub.ID, Title: "Eggs"}); err != nil {
				t.Fatalf("create item: %v", err)
			}

			if err := s.DeleteCategory(ctx, cat.ID); err != nil {
				t.Fatalf("delete category: %v", err)
			}

			if _, err := s.GetSubcategory(ctx, sub.ID); !errors.Is(err, core.ErrNotFound) {
				t.Errorf("subcategory survived cascade: err = %v", err)
			}
			items, err := s.ListItems(ctx, sub.ID)
			if err != nil {
				t.Fatalf("list items: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("items survived cascade: %d left", len(items))
			}
		})
	}
}

func TestItemCRUD(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cat := mustCategory(t, s, "Reading")
			sub := mustSubcategory(t, s, cat.ID, "Backlog", core.ModeChecklist)

			it, err := s.CreateItem(ctx, core.Item{
				SubcategoryID: sub.ID,
				Title:         "The Go Programming Language",
				Urgency:       core.UrgencyHigh,
			})
			if err != nil {
				t.Fatalf("create item: %v", err)
			}

			done := true
			title := "TGPL"
			if err := s.UpdateItem(ctx, it.ID, core.ItemPatch{Completed: &done, Title: &title}); err != nil {
				t.Fatalf("update item: %v", err)
			}

			got, err := s.GetItem(ctx, it.ID)
			if err != nil {
				t.Fatalf("get item: %v", err)
			}
			if !got.Completed || got.Title != "TGPL" || got.Urgency != core.UrgencyHigh {
				t.Errorf("unexpected item after update: %+v", got)
			}
			if !got.UpdatedAt.After(it.UpdatedAt) && !got.UpdatedAt.Equal(it.UpdatedAt) {
				t.Errorf("UpdatedAt went backwards: %v -> %v", it.UpdatedAt, got.UpdatedAt)
			}

			if err := s.DeleteItem(ctx, it.ID); err != nil {
				t.Fatalf("delete item: %v", err)
			}
			if _, err := s.GetItem(ctx, it.ID); !errors.Is(err, core.ErrNotFound) {
				t.Errorf("get after delete err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestCreateItemRequiresSubcategory(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateItem(context.Background(), core.Item{SubcategoryID: 9999, Title: "Orphan"})
			if !errors.Is(err, core.ErrConstraint) {
				t.Errorf("err = %v, want ErrConstraint", err)
			}
		})
	}
}

func TestListItemsByValue(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cat := mustCategory(t, s, "Finance")
			sub := mustSubcategory(t, s, cat.ID, "Budget", core.ModeBudget)

			for _, month := range []string{"2026-08", "2026-08", "2026-09"} {
				if _, err := s.CreateItem(ctx, core.Item{
					SubcategoryID: sub.ID, Title: "tx", Value: month,
				}); err != nil {
					t.Fatalf("create item: %v", err)
				}
			}

			aug, err := s.ListItemsByValue(ctx, sub.ID, "2026-08")
			if err != nil {
				t.Fatalf("list by value: %v", err)
			}
			if len(aug) != 2 {
				t.Errorf("got %d items for 2026-08, want 2", len(aug))
			}
		})
	}
}

func TestListSubcategoriesByMode(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cat := mustCategory(t, s, "Daily")
			mustSubcategory(t, s, cat.ID, "Birthdays", core.ModeRecurringDates)
			mustSubcategory(t, s, cat.ID, "Chores", core.ModeChecklist)
			mustSubcategory(t, s, cat.ID, "Renewals", core.ModeRecurringDates)

			subs, err := s.ListSubcategoriesByMode(ctx, core.ModeRecurringDates)
			if err != nil {
				t.Fatalf("list by mode: %v", err)
			}
			if len(subs) != 2 {
				t.Errorf("got %d recurringDates subcategories, want 2", len(subs))
			}
		})
	}
}

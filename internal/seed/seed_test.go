package seed

import (
	"context"
	"testing"

	"github.com/matheob255/life-hub/internal/core"
	"github.com/matheob255/life-hub/internal/storage"
)

func TestRunSeedsEveryMode(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := Run(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seen := map[core.Mode]bool{}
	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("seed wrote no categories")
	}
	for _, cat := range cats {
		subs, err := store.ListSubcategories(ctx, cat.ID)
		if err != nil {
			t.Fatalf("list subcategories: %v", err)
		}
		for _, sub := range subs {
			seen[sub.Mode] = true
		}
	}
	for _, mode := range core.Modes {
		if !seen[mode] {
			t.Errorf("mode %q has no seeded subcategory", mode)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := Run(ctx, store); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before, _ := store.CountCategories(ctx)
	if err := Run(ctx, store); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	after, _ := store.CountCategories(ctx)
	if before != after {
		t.Errorf("second seed changed category count: %d -> %d", before, after)
	}
}

func TestSeededTabularSubcategoriesCarryColumnSpecs(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	if err := Run(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cats, _ := store.ListCategories(ctx)
	for _, cat := range cats {
		subs, _ := store.ListSubcategories(ctx, cat.ID)
		for _, sub := range subs {
			if sub.Mode != core.ModeTabular {
				continue
			}
			if len(sub.Columns) == 0 {
				t.Errorf("tabular subcategory %q seeded without a column spec", sub.Name)
			}
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matheob255/life-hub/internal/core"
	"github.com/matheob255/life-hub/internal/modes"
	"github.com/matheob255/life-hub/internal/storage"
)

func newFixture(t *testing.T, mode core.Mode) (*ItemService, *TaxonomyService, core.Subcategory) {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	taxonomy := NewTaxonomyService(store)

	cat, err := store.CreateCategory(context.Background(), core.Category{Name: "Test"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	sub, err := taxonomy.CreateSubcategory(context.Background(), core.Subcategory{
		CategoryID: cat.ID, Name: "Fixture", Mode: mode,
	})
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}
	return NewItemService(store), taxonomy, sub
}

func TestCreateReturnsReloadedList(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeChecklist)
	ctx := context.Background()

	list, _, err := items.Create(ctx, sub.ID, json.RawMessage(`{"title":"First"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(list) != 1 || list[0].ID == 0 {
		t.Fatalf("list after create = %+v, want one stored item with assigned ID", list)
	}

	list, _, err = items.Create(ctx, sub.ID, json.RawMessage(`{"title":"Second"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("list length = %d, want 2", len(list))
	}
}

func TestCreateValidationWritesNothing(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeChecklist)
	ctx := context.Background()

	_, _, err := items.Create(ctx, sub.ID, json.RawMessage(`{"title":""}`))
	if !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	list, err := items.List(ctx, sub.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("refused write left %d items behind", len(list))
	}
}

func TestCreateUnknownSubcategory(t *testing.T) {
	items, _, _ := newFixture(t, core.ModeChecklist)
	_, _, err := items.Create(context.Background(), 9999, json.RawMessage(`{"title":"x"}`))
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleIsAnIdempotentPair(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeChecklist)
	ctx := context.Background()

	list, _, err := items.Create(ctx, sub.ID, json.RawMessage(`{"title":"Task"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	original := list[0]

	once, err := items.Toggle(ctx, original.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !once.Completed {
		t.Error("first toggle did not complete the item")
	}
	if once.UpdatedAt.Before(original.UpdatedAt) {
		t.Error("toggle did not advance UpdatedAt")
	}

	twice, err := items.Toggle(ctx, original.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if twice.Completed != original.Completed {
		t.Error("double toggle did not restore the original flag")
	}
	if twice.UpdatedAt.Before(once.UpdatedAt) {
		t.Error("second toggle did not advance UpdatedAt")
	}
}

func TestRecurringNoOpCreateLeavesStoreUntouched(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeRecurringDates)
	ctx := context.Background()

	list, written, err := items.Create(ctx, sub.ID, json.RawMessage(`{"title":"June","day":40,"label":"x"}`))
	if err != nil {
		t.Fatalf("no-op create should not fail: %v", err)
	}
	if written {
		t.Error("no-op create reported a write")
	}
	if len(list) != 0 {
		t.Errorf("no-op create stored %d items", len(list))
	}
}

func TestPatchDispatchesByMode(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeBudget)
	ctx := context.Background()

	list, _, err := items.Create(ctx, sub.ID,
		json.RawMessage(`{"title":"Rent","amount":"600","type":"expense","date":"2026-08-01"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err = items.Patch(ctx, list[0].ID, json.RawMessage(`{"date":"2026-09-01"}`))
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if list[0].Value != "2026-09" {
		t.Errorf("month bucket = %q, want it to follow the patched date", list[0].Value)
	}
}

func TestDeleteReturnsOwningSubcategory(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeChecklist)
	ctx := context.Background()

	list, _, err := items.Create(ctx, sub.ID, json.RawMessage(`{"title":"Task"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	owner, err := items.Delete(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if owner != sub.ID {
		t.Errorf("owner = %d, want %d", owner, sub.ID)
	}
	if _, err := items.Delete(ctx, list[0].ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestViewDispatch(t *testing.T) {
	items, _, sub := newFixture(t, core.ModeBudget)
	ctx := context.Background()

	if _, _, err := items.Create(ctx, sub.ID,
		json.RawMessage(`{"title":"Salary","amount":"2000","type":"income","date":"2026-08-25"}`)); err != nil {
		t.Fatalf("create: %v", err)
	}

	v, err := items.View(ctx, sub.ID, modes.ViewRequest{Today: "2026-08-28", Month: "2026-08"})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	view, ok := v.(modes.BudgetView)
	if !ok {
		t.Fatalf("view type = %T", v)
	}
	if view.Income != "2000" || view.Balance != "2000" {
		t.Errorf("totals = %s/%s", view.Income, view.Balance)
	}
}

func TestCategoryCounts(t *testing.T) {
	store := storage.NewMemoryStore()
	taxonomy := NewTaxonomyService(store)
	ctx := context.Background()

	cat, _ := store.CreateCategory(ctx, core.Category{Name: "Daily"})
	for _, name := range []string{"Chores", "Groceries"} {
		if _, err := taxonomy.CreateSubcategory(ctx, core.Subcategory{
			CategoryID: cat.ID, Name: name, Mode: core.ModeChecklist,
		}); err != nil {
			t.Fatalf("create subcategory: %v", err)
		}
	}

	cats, err := taxonomy.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 1 || cats[0].SubcategoryCount != 2 {
		t.Errorf("summaries = %+v", cats)
	}
}

func TestCreateSubcategoryStripsColumnsForNonTabular(t *testing.T) {
	store := storage.NewMemoryStore()
	taxonomy := NewTaxonomyService(store)
	ctx := context.Background()

	cat, _ := store.CreateCategory(ctx, core.Category{Name: "Research"})
	sub, err := taxonomy.CreateSubcategory(ctx, core.Subcategory{
		CategoryID: cat.ID,
		Name:       "Notes",
		Mode:       core.ModeJournal,
		Columns:    []core.Column{{Key: "c1", Label: "x"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.Columns != nil {
		t.Errorf("columns survived on a non-tabular subcategory: %+v", sub.Columns)
	}
}

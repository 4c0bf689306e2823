package worker

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/matheob255/life-hub/internal/core"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/storage"
)

func TestCollect(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	cat, _ := store.CreateCategory(ctx, core.Category{Name: "Daily"})
	sub, _ := store.CreateSubcategory(ctx, core.Subcategory{
		CategoryID: cat.ID, Name: "Important dates", Mode: core.ModeRecurringDates,
	})
	// Checklist subcategories must never leak into the digest.
	other, _ := store.CreateSubcategory(ctx, core.Subcategory{
		CategoryID: cat.ID, Name: "Chores", Mode: core.ModeChecklist,
	})
	store.CreateItem(ctx, core.Item{SubcategoryID: other.ID, Title: "Laundry"})

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for _, it := range []core.Item{
		{SubcategoryID: sub.ID, Title: "Dentist", Date: "2026-09-02"},
		{SubcategoryID: sub.ID, Title: "Far away", Date: "2026-12-24"},
		{SubcategoryID: sub.ID, Title: "Long gone", Date: "2026-05-01"},
		{SubcategoryID: sub.ID, Title: "August", Value: `{"day":30,"label":"Rent due"}`},
		{SubcategoryID: sub.ID, Title: "August", Value: `{"day":3,"label":"Already passed"}`},
		{SubcategoryID: sub.ID, Title: "December", Value: `{"day":24,"label":"Wrong month"}`},
	} {
		if _, err := store.CreateItem(ctx, it); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	w := NewDigestWorker(store, applog.New(slog.LevelError, applog.ComponentWorker), 14)
	entries, err := w.Collect(ctx, now)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want dentist visit and rent reminder", entries)
	}
	var sawDate, sawBucket bool
	for _, e := range entries {
		switch {
		case e.Date == "2026-09-02" && e.Title == "Dentist":
			sawDate = true
		case e.Day == 30 && e.Title == "Rent due":
			sawBucket = true
		}
	}
	if !sawDate || !sawBucket {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRunEmptyDigest(t *testing.T) {
	store := storage.NewMemoryStore()
	w := NewDigestWorker(store, applog.New(slog.LevelError, applog.ComponentWorker), 7)
	if err := w.Run(context.Background(), time.Now()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

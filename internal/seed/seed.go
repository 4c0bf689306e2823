// Package seed populates a fresh database with the default taxonomy.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matheob255/life-hub/internal/core"
	"github.com/matheob255/life-hub/internal/storage"
)

// defaultColumnSpecs maps well-known tabular subcategory names to their
// table shape. Subcategories created later pick their own spec; these only
// apply at seed time.
var defaultColumnSpecs = map[string][]core.Column{
	"Movies": {
		{Key: "c1", Label: "Title", Width: 2},
		{Key: "c2", Label: "Year"},
		{Key: "c3", Label: "Rating"},
	},
	"Books": {
		{Key: "c1", Label: "Title", Width: 2},
		{Key: "c2", Label: "Author"},
		{Key: "c3", Label: "Finished"},
	},
	"Series": {
		{Key: "c1", Label: "Title", Width: 2},
		{Key: "c2", Label: "Season"},
		{Key: "c3", Label: "Status"},
	},
}

type subSeed struct {
	name string
	icon string
	mode core.Mode
}

type catSeed struct {
	name  string
	icon  string
	color string
	subs  []subSeed
}

// defaults carries one subcategory per mode so a fresh database exercises
// every interpreter.
var defaults = []catSeed{
	{name: "Running", icon: "figure.run", color: "#E8590C", subs: []subSeed{
		{name: "Distance log", icon: "chart.bar", mode: core.ModeTracker},
		{name: "Races", icon: "calendar", mode: core.ModeRecurringDates},
	}},
	{name: "Nutrition", icon: "fork.knife", color: "#2F9E44", subs: []subSeed{
		{name: "Groceries", icon: "cart", mode: core.ModeChecklist},
		{name: "Weight", icon: "scalemass", mode: core.ModeTracker},
	}},
	{name: "Piano", icon: "pianokeys", color: "#1971C2", subs: []subSeed{
		{name: "Practice diary", icon: "book", mode: core.ModeJournal},
		{name: "Repertoire", icon: "music.note.list", mode: core.ModeChecklist},
	}},
	{name: "Reading", icon: "books.vertical", color: "#862E9C", subs: []subSeed{
		{name: "Books", icon: "book.closed", mode: core.ModeTabular},
		{name: "Reading notes", icon: "note.text", mode: core.ModeJournal},
	}},
	{name: "Research", icon: "magnifyingglass", color: "#0B7285", subs: []subSeed{
		{name: "Movies", icon: "film", mode: core.ModeTabular},
		{name: "Series", icon: "tv", mode: core.ModeTabular},
		{name: "Travels", icon: "airplane", mode: core.ModeTravels},
	}},
	{name: "Daily", icon: "sun.max", color: "#E67700", subs: []subSeed{
		{name: "To do", icon: "checklist", mode: core.ModeChecklist},
		{name: "Budget", icon: "creditcard", mode: core.ModeBudget},
		{name: "Important dates", icon: "calendar.badge.clock", mode: core.ModeRecurringDates},
	}},
}

// Run seeds the default taxonomy. It is idempotent at the coarsest level:
// if any category exists the database is considered initialized and
// nothing is written.
func Run(ctx context.Context, store storage.Store) error {
	n, err := store.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("check existing taxonomy: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Seed skipped, taxonomy already present", "categories", n)
		return nil
	}

	for order, cs := range defaults {
		cat, err := store.CreateCategory(ctx, core.Category{
			Name:         cs.name,
			Icon:         cs.icon,
			Color:        cs.color,
			DisplayOrder: order,
		})
		if err != nil {
			return fmt.Errorf("seed category %q: %w", cs.name, err)
		}
		for _, ss := range cs.subs {
			if _, err := store.CreateSubcategory(ctx, core.Subcategory{
				CategoryID: cat.ID,
				Name:       ss.name,
				Icon:       ss.icon,
				Mode:       ss.mode,
				Columns:    defaultColumnSpecs[ss.name],
			}); err != nil {
				return fmt.Errorf("seed subcategory %q: %w", ss.name, err)
			}
		}
	}

	slog.InfoContext(ctx, "Seed complete", "categories", len(defaults))
	return nil
}

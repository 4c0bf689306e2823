package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
	"github.com/matheob255/life-hub/internal/storage"
)

// CategorySummary is a category annotated with its subcategory count.
type CategorySummary struct {
	core.Category
	SubcategoryCount int
}

// TaxonomyService owns the two-level category tree. Subcategory modes are
// fixed at creation; there is deliberately no operation to change one.
type TaxonomyService struct {
	store storage.Store
}

func NewTaxonomyService(store storage.Store) *TaxonomyService {
	return &TaxonomyService{store: store}
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.SubcategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategorySummary{Category: c, SubcategoryCount: counts[c.ID]})
	}
	return out, nil
}

// DeleteCategory removes a category and, through the store's cascade
// policy, every subcategory and item under it.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *TaxonomyService) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	return s.store.ListSubcategories(ctx, categoryID)
}

func (s *TaxonomyService) GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error) {
	return s.store.GetSubcategory(ctx, id)
}

// CreateSubcategory validates the mode and optional column spec before
// handing off to the store.
func (s *TaxonomyService) CreateSubcategory(ctx context.Context, sub core.Subcategory) (core.Subcategory, error) {
	mode, err := core.ParseMode(string(sub.Mode))
	if err != nil {
		return core.Subcategory{}, err
	}
	sub.Mode = mode

	// Column specs only mean something to tabular subcategories.
	if mode != core.ModeTabular {
		sub.Columns = nil
	}
	for _, col := range sub.Columns {
		if strings.TrimSpace(col.Key) == "" || strings.TrimSpace(col.Label) == "" {
			return core.Subcategory{}, core.ErrEmptyLabel
		}
	}

	created, err := s.store.CreateSubcategory(ctx, sub)
	if err != nil {
		return core.Subcategory{}, err
	}
	slog.InfoContext(ctx, "Subcategory registered",
		"id", created.ID, "mode", created.Mode, "columns", len(created.Columns))
	return created, nil
}

func (s *TaxonomyService) DeleteSubcategory(ctx context.Context, id int64) error {
	return s.store.DeleteSubcategory(ctx, id)
}

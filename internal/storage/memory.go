package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matheob255/life-hub/internal/core"
)

// MemoryStore keeps everything in maps behind a mutex. It honors the same
// cascade and not-found semantics as the SQLite store, which makes it a
// drop-in for tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64

	categories    map[int64]core.Category
	subcategories map[int64]core.Subcategory
	items         map[int64]core.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:        1,
		categories:    make(map[int64]core.Category),
		subcategories: make(map[int64]core.Subcategory),
		items:         make(map[int64]core.Item),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return core.Category{}, core.ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.categories[c.ID] = c
	return c, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) CountCategories(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.categories)), nil
}

func (s *MemoryStore) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	delete(s.categories, id)
	for subID, sub := range s.subcategories {
		if sub.CategoryID != id {
			continue
		}
		delete(s.subcategories, subID)
		s.dropItemsOf(subID)
	}
	return nil
}

func (s *MemoryStore) SubcategoryCounts(_ context.Context) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int)
	for _, sub := range s.subcategories {
		counts[sub.CategoryID]++
	}
	return counts, nil
}

func (s *MemoryStore) CreateSubcategory(_ context.Context, sub core.Subcategory) (core.Subcategory, error) {
	if strings.TrimSpace(sub.Name) == "" {
		return core.Subcategory{}, core.ErrEmptyName
	}
	if _, err := core.ParseMode(string(sub.Mode)); err != nil {
		return core.Subcategory{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[sub.CategoryID]; !ok {
		return core.Subcategory{}, fmt.Errorf("category %d: %w", sub.CategoryID, core.ErrConstraint)
	}
	sub.ID = s.allocID()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	s.subcategories[sub.ID] = sub
	return sub, nil
}

func (s *MemoryStore) GetSubcategory(_ context.Context, id int64) (core.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subcategories[id]
	if !ok {
		return core.Subcategory{}, fmt.Errorf("subcategory %d: %w", id, core.ErrNotFound)
	}
	return sub, nil
}

func (s *MemoryStore) ListSubcategories(_ context.Context, categoryID int64) ([]core.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Subcategory
	for _, sub := range s.subcategories {
		if sub.CategoryID == categoryID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListSubcategoriesByMode(_ context.Context, mode core.Mode) ([]core.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Subcategory
	for _, sub := range s.subcategories {
		if sub.Mode == mode {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteSubcategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subcategories[id]; !ok {
		return fmt.Errorf("subcategory %d: %w", id, core.ErrNotFound)
	}
	delete(s.subcategories, id)
	s.dropItemsOf(id)
	return nil
}

func (s *MemoryStore) dropItemsOf(subcategoryID int64) {
	for itemID, it := range s.items {
		if it.SubcategoryID == subcategoryID {
			delete(s.items, itemID)
		}
	}
}

func (s *MemoryStore) CreateItem(_ context.Context, item core.Item) (core.Item, error) {
	if strings.TrimSpace(item.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subcategories[item.SubcategoryID]; !ok {
		return core.Item{}, fmt.Errorf("subcategory %d: %w", item.SubcategoryID, core.ErrConstraint)
	}
	item.ID = s.allocID()
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *MemoryStore) GetItem(_ context.Context, id int64) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return core.Item{}, fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	return it, nil
}

func (s *MemoryStore) ListItems(_ context.Context, subcategoryID int64) ([]core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Item
	for _, it := range s.items {
		if it.SubcategoryID == subcategoryID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListItemsByValue(_ context.Context, subcategoryID int64, value string) ([]core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Item
	for _, it := range s.items {
		if it.SubcategoryID == subcategoryID && it.Value == value {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateItem(_ context.Context, id int64, patch core.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return core.ErrEmptyTitle
		}
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Value != nil {
		it.Value = *patch.Value
	}
	if patch.Date != nil {
		it.Date = *patch.Date
	}
	if patch.Completed != nil {
		it.Completed = *patch.Completed
	}
	if patch.Urgency != nil {
		it.Urgency = *patch.Urgency
	}
	if patch.Transaction != nil {
		it.Transaction = *patch.Transaction
	}
	if patch.Amount != nil {
		it.Amount = *patch.Amount
	}
	it.UpdatedAt = time.Now()
	s.items[id] = it
	return nil
}

func (s *MemoryStore) DeleteItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*SQLiteStore)(nil)

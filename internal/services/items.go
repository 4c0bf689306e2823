// Package services orchestrates the storage and mode layers behind the
// HTTP boundary.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matheob255/life-hub/internal/core"
	"github.com/matheob255/life-hub/internal/modes"
	"github.com/matheob255/life-hub/internal/storage"
)

// ErrNoOp is re-exported so callers outside the modes package can map the
// silent-write contract without importing it.
var ErrNoOp = modes.ErrNoOp

// ItemService implements every item operation. Writes follow a strict
// sequence: resolve the owning subcategory, dispatch to its interpreter,
// persist, then reload the full list so callers always render from stored
// state rather than from what they thought they wrote.
type ItemService struct {
	store storage.Store
}

func NewItemService(store storage.Store) *ItemService {
	return &ItemService{store: store}
}

// List returns the subcategory's raw generic records.
func (s *ItemService) List(ctx context.Context, subcategoryID int64) ([]core.Item, error) {
	if _, err := s.store.GetSubcategory(ctx, subcategoryID); err != nil {
		return nil, err
	}
	return s.store.ListItems(ctx, subcategoryID)
}

// Create dispatches the raw payload to the subcategory's interpreter,
// persists the encoded item and returns the reloaded list. A modes.ErrNoOp
// from the interpreter skips the write and returns the list unchanged
// with written=false.
func (s *ItemService) Create(ctx context.Context, subcategoryID int64, raw json.RawMessage) (items []core.Item, written bool, err error) {
	sub, err := s.store.GetSubcategory(ctx, subcategoryID)
	if err != nil {
		return nil, false, err
	}
	in, err := modes.Get(sub.Mode)
	if err != nil {
		return nil, false, err
	}

	item, err := in.EncodeCreate(sub, raw)
	if errors.Is(err, modes.ErrNoOp) {
		slog.InfoContext(ctx, "Item create swallowed by mode contract",
			"subcategory_id", sub.ID, "mode", sub.Mode)
		items, err = s.store.ListItems(ctx, subcategoryID)
		return items, false, err
	}
	if err != nil {
		return nil, false, err
	}

	if _, err := s.store.CreateItem(ctx, item); err != nil {
		return nil, false, fmt.Errorf("persist item: %w", err)
	}
	items, err = s.store.ListItems(ctx, subcategoryID)
	return items, true, err
}

// Patch applies a mode-dispatched partial edit and returns the reloaded
// list of the owning subcategory.
func (s *ItemService) Patch(ctx context.Context, itemID int64, raw json.RawMessage) ([]core.Item, error) {
	existing, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	sub, err := s.store.GetSubcategory(ctx, existing.SubcategoryID)
	if err != nil {
		return nil, err
	}
	in, err := modes.Get(sub.Mode)
	if err != nil {
		return nil, err
	}

	patch, err := in.EncodePatch(sub, existing, raw)
	if errors.Is(err, modes.ErrNoOp) {
		return s.store.ListItems(ctx, sub.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateItem(ctx, itemID, patch); err != nil {
		return nil, fmt.Errorf("persist patch: %w", err)
	}
	return s.store.ListItems(ctx, sub.ID)
}

// Toggle flips an item's completed flag. Toggling twice restores the
// original flag; every toggle stamps UpdatedAt.
func (s *ItemService) Toggle(ctx context.Context, itemID int64) (core.Item, error) {
	existing, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return core.Item{}, err
	}
	flipped := !existing.Completed
	if err := s.store.UpdateItem(ctx, itemID, core.ItemPatch{Completed: &flipped}); err != nil {
		return core.Item{}, fmt.Errorf("persist toggle: %w", err)
	}
	return s.store.GetItem(ctx, itemID)
}

// Delete removes an item. The subcategory ID of the removed item is
// returned so callers can invalidate the right view.
func (s *ItemService) Delete(ctx context.Context, itemID int64) (int64, error) {
	existing, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return 0, err
	}
	return existing.SubcategoryID, nil
}

// View builds the subcategory's mode-specific aggregate, anchored at now.
func (s *ItemService) View(ctx context.Context, subcategoryID int64, req modes.ViewRequest) (any, error) {
	sub, err := s.store.GetSubcategory(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	in, err := modes.Get(sub.Mode)
	if err != nil {
		return nil, err
	}
	if req.Today == "" {
		req.Today = time.Now().Format(core.DateLayout)
	}
	if req.Month == "" {
		req.Month = core.MonthKeyOf(time.Now())
	}

	// Budget views only ever need one month bucket; the denormalized
	// month key keeps this an equality filter.
	var items []core.Item
	if sub.Mode == core.ModeBudget {
		items, err = s.store.ListItemsByValue(ctx, subcategoryID, req.Month)
	} else {
		items, err = s.store.ListItems(ctx, subcategoryID)
	}
	if err != nil {
		return nil, err
	}
	return in.View(sub, items, req)
}

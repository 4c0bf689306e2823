// Package worker holds the digest worker that periodically surfaces
// upcoming recurring dates.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matheob255/life-hub/internal/core"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/storage"
)

// DigestWorker scans every recurring-dates subcategory and logs entries
// falling due soon. It replaces a calendar screen: the digest lands in the
// logs instead of a UI.
type DigestWorker struct {
	store      storage.Store
	logger     *applog.Logger
	windowDays int
}

// DigestEntry is one line of the digest.
type DigestEntry struct {
	Subcategory string
	Title       string
	Date        string
	Day         int
}

func NewDigestWorker(store storage.Store, logger *applog.Logger, windowDays int) *DigestWorker {
	return &DigestWorker{
		store:      store,
		logger:     logger.WithComponent(applog.ComponentWorker),
		windowDays: windowDays,
	}
}

// Run collects and logs one digest anchored at now.
func (w *DigestWorker) Run(ctx context.Context, now time.Time) error {
	entries, err := w.Collect(ctx, now)
	if err != nil {
		return fmt.Errorf("collect digest: %w", err)
	}

	if len(entries) == 0 {
		w.logger.InfoContext(ctx, "Digest: nothing due",
			applog.FieldOperation, applog.OpDigest, "window_days", w.windowDays)
		return nil
	}
	for _, e := range entries {
		if e.Date != "" {
			w.logger.InfoContext(ctx, "Digest: upcoming date",
				applog.FieldOperation, applog.OpDigest,
				"subcategory", e.Subcategory, "title", e.Title, "date", e.Date)
			continue
		}
		w.logger.InfoContext(ctx, "Digest: this month",
			applog.FieldOperation, applog.OpDigest,
			"subcategory", e.Subcategory, "title", e.Title, "day", e.Day)
	}
	w.logger.InfoContext(ctx, "Digest complete",
		applog.FieldOperation, applog.OpDigest, "entries", len(entries))
	return nil
}

// Collect returns free dates within the window plus month-bucket entries
// for the current month whose day has not yet passed.
func (w *DigestWorker) Collect(ctx context.Context, now time.Time) ([]DigestEntry, error) {
	subs, err := w.store.ListSubcategoriesByMode(ctx, core.ModeRecurringDates)
	if err != nil {
		return nil, err
	}

	today := now.Format(core.DateLayout)
	horizon := now.AddDate(0, 0, w.windowDays).Format(core.DateLayout)
	currentMonth := core.MonthNames[now.Month()-1]

	var entries []DigestEntry
	for _, sub := range subs {
		items, err := w.store.ListItems(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if _, isBucket := core.MonthIndex(it.Title); isBucket {
				if it.Title != currentMonth {
					continue
				}
				day, label := decodeBucketEntry(it.Value)
				if label == "" || day < now.Day() {
					continue
				}
				entries = append(entries, DigestEntry{
					Subcategory: sub.Name,
					Title:       label,
					Day:         day,
				})
				continue
			}
			if it.Date >= today && it.Date <= horizon {
				entries = append(entries, DigestEntry{
					Subcategory: sub.Name,
					Title:       it.Title,
					Date:        it.Date,
				})
			}
		}
	}
	return entries, nil
}

func decodeBucketEntry(raw string) (int, string) {
	var entry struct {
		Day   int    `json:"day"`
		Label string `json:"label"`
	}
	if raw == "" {
		return 0, ""
	}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return 0, ""
	}
	return entry.Day, entry.Label
}

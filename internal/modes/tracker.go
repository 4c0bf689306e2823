package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// TrackerPayload records a measurement for a day: distance run, pages read,
// weight. The title is derived from the date, never user-supplied.
type TrackerPayload struct {
	Value string `json:"value"`
	Date  string `json:"date,omitempty"`
}

type TrackerPatch struct {
	Value *string `json:"value,omitempty"`
	Date  *string `json:"date,omitempty"`
}

// TrackerEntry is one row of the tracker view.
type TrackerEntry struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Value string `json:"value"`
}

// TrackerView lists entries newest-day first.
type TrackerView struct {
	Entries []TrackerEntry `json:"entries"`
}

type TrackerInterpreter struct{}

func (TrackerInterpreter) Mode() core.Mode { return core.ModeTracker }

func trackerTitle(date string) string {
	return "Entry for " + date
}

func (TrackerInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p TrackerPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	if strings.TrimSpace(p.Value) == "" {
		return core.Item{}, core.ErrEmptyValue
	}
	date := strings.TrimSpace(p.Date)
	if date == "" {
		date = core.Today()
	} else if err := core.ValidateDate(date); err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         trackerTitle(date),
		Value:         strings.TrimSpace(p.Value),
		Date:          date,
	}, nil
}

func (TrackerInterpreter) EncodePatch(_ core.Subcategory, _ core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p TrackerPatch
	if err := decodePayload(raw, &p); err != nil {
		return core.ItemPatch{}, err
	}
	var patch core.ItemPatch
	if p.Value != nil {
		v := strings.TrimSpace(*p.Value)
		if v == "" {
			return core.ItemPatch{}, core.ErrEmptyValue
		}
		patch.Value = &v
	}
	if p.Date != nil {
		d := strings.TrimSpace(*p.Date)
		if err := core.ValidateDate(d); err != nil {
			return core.ItemPatch{}, err
		}
		patch.Date = &d
		// Title tracks the date.
		title := trackerTitle(d)
		patch.Title = &title
	}
	return patch, nil
}

func (TrackerInterpreter) View(_ core.Subcategory, items []core.Item, _ ViewRequest) (any, error) {
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	view := TrackerView{Entries: []TrackerEntry{}}
	for _, it := range sorted {
		view.Entries = append(view.Entries, TrackerEntry{ID: it.ID, Date: it.Date, Value: it.Value})
	}
	return view, nil
}

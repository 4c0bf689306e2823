package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// JournalPayload is a dated free-text entry. Text rides in the generic
// record's description field.
type JournalPayload struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Date  string `json:"date,omitempty"`
}

type JournalPatch struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
	Date  *string `json:"date,omitempty"`
}

type JournalEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Date  string `json:"date,omitempty"`
}

// JournalView renders entries newest first by creation time.
type JournalView struct {
	Entries []JournalEntry `json:"entries"`
}

type JournalInterpreter struct{}

func (JournalInterpreter) Mode() core.Mode { return core.ModeJournal }

func (JournalInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p JournalPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	date := strings.TrimSpace(p.Date)
	if date == "" {
		date = core.Today()
	} else if err := core.ValidateDate(date); err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         strings.TrimSpace(p.Title),
		Description:   p.Text,
		Date:          date,
	}, nil
}

func (JournalInterpreter) EncodePatch(_ core.Subcategory, _ core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p JournalPatch
	if err := decodePayload(raw, &p); err != nil {
		return core.ItemPatch{}, err
	}
	var patch core.ItemPatch
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return core.ItemPatch{}, core.ErrEmptyTitle
		}
		patch.Title = &t
	}
	if p.Text != nil {
		patch.Description = p.Text
	}
	if p.Date != nil {
		d := strings.TrimSpace(*p.Date)
		if err := core.ValidateDate(d); err != nil {
			return core.ItemPatch{}, err
		}
		patch.Date = &d
	}
	return patch, nil
}

func (JournalInterpreter) View(_ core.Subcategory, items []core.Item, _ ViewRequest) (any, error) {
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	view := JournalView{Entries: []JournalEntry{}}
	for _, it := range sorted {
		view.Entries = append(view.Entries, JournalEntry{
			ID: it.ID, Title: it.Title, Text: it.Description, Date: it.Date,
		})
	}
	return view, nil
}

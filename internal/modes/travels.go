package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// travelSections lists the grouping buckets in display order.
var travelSections = []string{
	"Next travels",
	"Europe",
	"Asia",
	"Africa",
	"North America",
	"South America",
	"Oceania",
}

// TravelsPayload is one destination filed under a section bucket.
type TravelsPayload struct {
	Title   string `json:"title"`
	Section string `json:"section"`
}

type TravelsPatch struct {
	Title   *string `json:"title,omitempty"`
	Section *string `json:"section,omitempty"`
}

type TravelEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type TravelSection struct {
	Section string        `json:"section"`
	Entries []TravelEntry `json:"entries"`
}

// TravelsView groups entries by section in canonical order, skipping empty
// sections.
type TravelsView struct {
	Sections []TravelSection `json:"sections"`
}

type TravelsInterpreter struct{}

func (TravelsInterpreter) Mode() core.Mode { return core.ModeTravels }

func validSection(s string) bool {
	for _, known := range travelSections {
		if s == known {
			return true
		}
	}
	return false
}

func (TravelsInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p TravelsPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	section := strings.TrimSpace(p.Section)
	if !validSection(section) {
		return core.Item{}, core.ErrInvalidSection
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         strings.TrimSpace(p.Title),
		Description:   section,
	}, nil
}

func (TravelsInterpreter) EncodePatch(_ core.Subcategory, _ core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p TravelsPatch
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
	if p.Section != nil {
		s := strings.TrimSpace(*p.Section)
		if !validSection(s) {
			return core.ItemPatch{}, core.ErrInvalidSection
		}
		patch.Description = &s
	}
	return patch, nil
}

func (TravelsInterpreter) View(_ core.Subcategory, items []core.Item, _ ViewRequest) (any, error) {
	grouped := map[string][]TravelEntry{}
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, it := range sorted {
		grouped[it.Description] = append(grouped[it.Description], TravelEntry{ID: it.ID, Title: it.Title})
	}

	view := TravelsView{Sections: []TravelSection{}}
	for _, section := range travelSections {
		entries := grouped[section]
		if len(entries) == 0 {
			continue
		}
		view.Sections = append(view.Sections, TravelSection{Section: section, Entries: entries})
	}
	return view, nil
}

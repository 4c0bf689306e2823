package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// ChecklistPayload is the write shape for checklist items. Urgency is
// optional; to-do style lists use it, plain lists leave it empty.
type ChecklistPayload struct {
	Title   string `json:"title"`
	Urgency string `json:"urgency,omitempty"`
}

// ChecklistPatch is the partial edit shape.
type ChecklistPatch struct {
	Title   *string `json:"title,omitempty"`
	Urgency *string `json:"urgency,omitempty"`
}

// ChecklistEntry is one row of the checklist view.
type ChecklistEntry struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
	Urgency   core.Urgency `json:"urgency,omitempty"`
	Color     string       `json:"color"`
}

// ChecklistView groups pending entries before completed ones.
type ChecklistView struct {
	Pending   []ChecklistEntry `json:"pending"`
	Completed []ChecklistEntry `json:"completed"`
	Remaining int              `json:"remaining"`
}

type ChecklistInterpreter struct{}

func (ChecklistInterpreter) Mode() core.Mode { return core.ModeChecklist }

func (ChecklistInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p ChecklistPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	urgency, err := core.ParseUrgency(p.Urgency)
	if err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         strings.TrimSpace(p.Title),
		Urgency:       urgency,
	}, nil
}

func (ChecklistInterpreter) EncodePatch(_ core.Subcategory, _ core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p ChecklistPatch
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
	if p.Urgency != nil {
		u, err := core.ParseUrgency(*p.Urgency)
		if err != nil {
			return core.ItemPatch{}, err
		}
		patch.Urgency = &u
	}
	return patch, nil
}

func (ChecklistInterpreter) View(_ core.Subcategory, items []core.Item, _ ViewRequest) (any, error) {
	view := ChecklistView{
		Pending:   []ChecklistEntry{},
		Completed: []ChecklistEntry{},
	}
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	for _, it := range sorted {
		entry := ChecklistEntry{
			ID:        it.ID,
			Title:     it.Title,
			Completed: it.Completed,
			Urgency:   it.Urgency,
			Color:     urgencyColor(it.Urgency),
		}
		if it.Completed {
			view.Completed = append(view.Completed, entry)
		} else {
			view.Pending = append(view.Pending, entry)
		}
	}
	view.Remaining = len(view.Pending)
	return view, nil
}

func urgencyColor(u core.Urgency) string {
	switch u {
	case core.UrgencyHigh:
		return "red"
	case core.UrgencyMedium:
		return "amber"
	case core.UrgencyLow:
		return "green"
	default:
		return "neutral"
	}
}

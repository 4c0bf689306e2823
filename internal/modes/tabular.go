package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// defaultColumns is the shape a tabular subcategory renders with when no
// column spec is stored.
var defaultColumns = []core.Column{{Key: "c1", Label: "Title"}}

// TabularPayload holds one row keyed by column key.
type TabularPayload struct {
	Cells map[string]string `json:"cells"`
}

// TabularRow is one decoded row of the table view.
type TabularRow struct {
	ID    int64             `json:"id"`
	Cells map[string]string `json:"cells"`
}

// TabularView pairs the column spec with the decoded rows.
type TabularView struct {
	Columns []core.Column `json:"columns"`
	Rows    []TabularRow  `json:"rows"`
}

type TabularInterpreter struct{}

func (TabularInterpreter) Mode() core.Mode { return core.ModeTabular }

func tableColumns(sub core.Subcategory) []core.Column {
	if len(sub.Columns) > 0 {
		return sub.Columns
	}
	return defaultColumns
}

func (TabularInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p TabularPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	cols := tableColumns(sub)
	cells := make(map[string]string, len(cols))
	for _, col := range cols {
		cells[col.Key] = strings.TrimSpace(p.Cells[col.Key])
	}
	// The first column doubles as the row title and must be set.
	title := cells[cols[0].Key]
	if title == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         title,
		Value:         string(encoded),
	}, nil
}

func (TabularInterpreter) EncodePatch(sub core.Subcategory, existing core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p TabularPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.ItemPatch{}, err
	}
	if p.Cells == nil {
		return core.ItemPatch{}, nil
	}
	cols := tableColumns(sub)
	cells := decodeCells(existing.Value)
	for _, col := range cols {
		if v, ok := p.Cells[col.Key]; ok {
			cells[col.Key] = strings.TrimSpace(v)
		}
	}
	title := cells[cols[0].Key]
	if title == "" {
		return core.ItemPatch{}, core.ErrEmptyTitle
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return core.ItemPatch{}, err
	}
	value := string(encoded)
	return core.ItemPatch{Title: &title, Value: &value}, nil
}

func (TabularInterpreter) View(sub core.Subcategory, items []core.Item, _ ViewRequest) (any, error) {
	view := TabularView{Columns: tableColumns(sub), Rows: []TabularRow{}}
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, it := range sorted {
		view.Rows = append(view.Rows, TabularRow{ID: it.ID, Cells: decodeCells(it.Value)})
	}
	return view, nil
}

// decodeCells is total: malformed stored JSON yields an empty row so the
// table still renders, just with blank cells.
func decodeCells(raw string) map[string]string {
	cells := map[string]string{}
	if raw == "" {
		return cells
	}
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return map[string]string{}
	}
	return cells
}

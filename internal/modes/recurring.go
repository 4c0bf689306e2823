package modes

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// RecurringPayload covers both recurring-date shapes. A title matching one
// of the twelve month names selects the month-bucket shape (day + label);
// anything else is a free dated entry.
type RecurringPayload struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Day   any    `json:"day,omitempty"`
	Label string `json:"label,omitempty"`
}

type RecurringPatch struct {
	Title *string `json:"title,omitempty"`
	Date  *string `json:"date,omitempty"`
	Day   any     `json:"day,omitempty"`
	Label *string `json:"label,omitempty"`
}

// monthEntry is the stored value shape of a month-bucket entry.
type monthEntry struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
}

type RecurringDateEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type RecurringBucketEntry struct {
	ID    int64  `json:"id"`
	Day   int    `json:"day"`
	Label string `json:"label"`
}

type RecurringBucket struct {
	Month   string                 `json:"month"`
	Entries []RecurringBucketEntry `json:"entries"`
}

// RecurringView splits free dates around today and lists month buckets in
// calendar order. Buckets with no entries are omitted.
type RecurringView struct {
	Upcoming []RecurringDateEntry `json:"upcoming"`
	Past     []RecurringDateEntry `json:"past"`
	Buckets  []RecurringBucket    `json:"buckets"`
}

type RecurringInterpreter struct{}

func (RecurringInterpreter) Mode() core.Mode { return core.ModeRecurringDates }

// coerceDay accepts a day given as a JSON number or numeric string. A day
// that is missing, non-numeric or outside 1-31 fails.
func coerceDay(v any) (int, bool) {
	switch d := v.(type) {
	case float64:
		day := int(d)
		if float64(day) != d {
			return 0, false
		}
		return checkDay(day)
	case string:
		day, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil {
			return 0, false
		}
		return checkDay(day)
	default:
		return 0, false
	}
}

func checkDay(day int) (int, bool) {
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func (RecurringInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p RecurringPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return core.Item{}, core.ErrEmptyTitle
	}

	if _, isBucket := core.MonthIndex(title); isBucket {
		day, ok := coerceDay(p.Day)
		if !ok || strings.TrimSpace(p.Label) == "" {
			// The month-bucket contract swallows bad entries silently.
			return core.Item{}, ErrNoOp
		}
		encoded, err := json.Marshal(monthEntry{Day: day, Label: strings.TrimSpace(p.Label)})
		if err != nil {
			return core.Item{}, err
		}
		return core.Item{
			SubcategoryID: sub.ID,
			Title:         title,
			Value:         string(encoded),
		}, nil
	}

	date := strings.TrimSpace(p.Date)
	if err := core.ValidateDate(date); err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         title,
		Date:          date,
	}, nil
}

func (RecurringInterpreter) EncodePatch(_ core.Subcategory, existing core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p RecurringPatch
	if err := decodePayload(raw, &p); err != nil {
		return core.ItemPatch{}, err
	}

	if _, isBucket := core.MonthIndex(existing.Title); isBucket {
		entry := decodeMonthEntry(existing.Value)
		if p.Day != nil {
			day, ok := coerceDay(p.Day)
			if !ok {
				return core.ItemPatch{}, ErrNoOp
			}
			entry.Day = day
		}
		if p.Label != nil {
			label := strings.TrimSpace(*p.Label)
			if label == "" {
				return core.ItemPatch{}, ErrNoOp
			}
			entry.Label = label
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			return core.ItemPatch{}, err
		}
		value := string(encoded)
		return core.ItemPatch{Value: &value}, nil
	}

	var patch core.ItemPatch
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return core.ItemPatch{}, core.ErrEmptyTitle
		}
		patch.Title = &t
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

func (RecurringInterpreter) View(_ core.Subcategory, items []core.Item, req ViewRequest) (any, error) {
	view := RecurringView{
		Upcoming: []RecurringDateEntry{},
		Past:     []RecurringDateEntry{},
		Buckets:  []RecurringBucket{},
	}

	buckets := map[string][]RecurringBucketEntry{}
	var free []core.Item
	for _, it := range items {
		if _, isBucket := core.MonthIndex(it.Title); isBucket {
			entry := decodeMonthEntry(it.Value)
			buckets[it.Title] = append(buckets[it.Title], RecurringBucketEntry{
				ID: it.ID, Day: entry.Day, Label: entry.Label,
			})
			continue
		}
		free = append(free, it)
	}

	// ISO dates compare lexically, so string order is date order.
	sort.SliceStable(free, func(i, j int) bool { return free[i].Date < free[j].Date })
	for _, it := range free {
		entry := RecurringDateEntry{ID: it.ID, Title: it.Title, Date: it.Date}
		if it.Date >= req.Today {
			view.Upcoming = append(view.Upcoming, entry)
		} else {
			view.Past = append(view.Past, entry)
		}
	}

	for _, month := range core.MonthNames {
		entries := buckets[month]
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })
		view.Buckets = append(view.Buckets, RecurringBucket{Month: month, Entries: entries})
	}
	return view, nil
}

// decodeMonthEntry is total: malformed stored JSON degrades to a blank
// entry instead of failing the view.
func decodeMonthEntry(raw string) monthEntry {
	var entry monthEntry
	if raw == "" {
		return entry
	}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return monthEntry{}
	}
	return entry
}

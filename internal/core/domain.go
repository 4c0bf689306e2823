package core

import (
	"strings"
	"time"
)

// Mode selects how a subcategory interprets its items. It is fixed at
// subcategory creation: every stored item is encoded against it, so changing
// it afterwards would silently corrupt existing records.
type Mode string

const (
	ModeChecklist      Mode = "checklist"
	ModeTracker        Mode = "tracker"
	ModeJournal        Mode = "journal"
	ModeTabular        Mode = "tabular"
	ModeBudget         Mode = "budget"
	ModeRecurringDates Mode = "recurringDates"
	ModeTravels        Mode = "travels"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{
	ModeChecklist,
	ModeTracker,
	ModeJournal,
	ModeTabular,
	ModeBudget,
	ModeRecurringDates,
	ModeTravels,
}

// ParseMode validates a raw mode string.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(s))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", ErrInvalidMode
}

// Urgency tags checklist items in to-do lists. Empty means untagged.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency validates a raw urgency string. Empty input is valid and
// returns the zero Urgency.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.TrimSpace(s)); u {
	case "", UrgencyLow, UrgencyMedium, UrgencyHigh:
		return u, nil
	default:
		return "", ErrInvalidUrgency
	}
}

// TransactionType classifies budget transactions.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ParseTransactionType validates a raw transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.TrimSpace(s)); t {
	case TransactionIncome, TransactionExpense:
		return t, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

type (
	// Category is a top-level life area. Created at seed time, immutable
	// afterwards except for reordering.
	Category struct {
		ID           int64
		Name         string
		Icon         string
		Color        string
		DisplayOrder int
		CreatedAt    time.Time
	}

	// Subcategory is one trackable concern inside a category. Its Mode
	// decides how descendant items are encoded and read back.
	Subcategory struct {
		ID         int64
		CategoryID int64
		Name       string
		Icon       string
		Mode       Mode
		// Columns holds the stored table shape for tabular subcategories.
		// Nil for every other mode, and for tabular subcategories that
		// render with the default single-column shape.
		Columns   []Column
		CreatedAt time.Time
	}

	// Column describes one column of a tabular subcategory.
	Column struct {
		Key   string `json:"key"`
		Label string `json:"label"`
		Width int    `json:"width,omitempty"`
		Align string `json:"align,omitempty"`
	}

	// Item is the generic record every mode persists through. No field is
	// required at the storage level beyond Title and SubcategoryID; which
	// fields are load-bearing, and what Value/Description mean, is defined
	// entirely by the owning subcategory's mode. Interpreters must never
	// read fields outside their own contract.
	//
	// Empty strings stand in for NULL on the optional text columns.
	Item struct {
		ID            int64
		SubcategoryID int64
		Title         string
		Description   string
		Value         string
		Date          string // ISO "YYYY-MM-DD", empty when unset
		Completed     bool
		Urgency       Urgency
		Transaction   TransactionType
		Amount        string // decimal-as-text, empty when unset
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}
)

// ItemPatch carries a partial update for an existing item. Nil fields are
// left untouched; the store always stamps UpdatedAt.
type ItemPatch struct {
	Title       *string
	Description *string
	Value       *string
	Date        *string
	Completed   *bool
	Urgency     *Urgency
	Transaction *TransactionType
	Amount      *string
}

// ISO day layout used everywhere an item carries a date.
const DateLayout = "2006-01-02"

// ValidateDate checks an ISO "YYYY-MM-DD" string. Empty is rejected; callers
// that allow absent dates check for "" first.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Today returns the current day in ISO form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Package modes holds one interpreter per subcategory mode. An interpreter
// owns the typed payload for its mode, encodes payloads into generic items,
// and builds the mode-specific read view. Everything outside this package
// handles items opaquely.
package modes

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/matheob255/life-hub/internal/core"
)

// ErrNoOp marks a write the mode contract swallows without side effects,
// e.g. a month-bucket entry with an out-of-range day. Callers treat it as
// success with nothing written.
var ErrNoOp = errors.New("write is a no-op")

// ViewRequest carries read-side parameters. Today is the ISO day views are
// anchored to; Month ("YYYY-MM") only matters to the budget view and
// defaults to Today's month.
type ViewRequest struct {
	Today string
	Month string
}

// NewViewRequest anchors a view at the given instant.
func NewViewRequest(now time.Time) ViewRequest {
	return ViewRequest{
		Today: now.Format(core.DateLayout),
		Month: core.MonthKeyOf(now),
	}
}

// Interpreter is the strategy interface every mode implements.
type Interpreter interface {
	Mode() core.Mode

	// EncodeCreate validates a raw payload and encodes it into a generic
	// item bound to the subcategory. Interpreters never touch generic
	// fields outside their own contract.
	EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error)

	// EncodePatch validates a raw partial payload against an existing item
	// and produces the store patch. Absent payload fields are untouched.
	EncodePatch(sub core.Subcategory, existing core.Item, raw json.RawMessage) (core.ItemPatch, error)

	// View builds the mode-specific aggregate from the subcategory's full
	// item list. Decode is total: malformed stored data degrades to blank,
	// it never fails the view.
	View(sub core.Subcategory, items []core.Item, req ViewRequest) (any, error)
}

var interpreters = map[core.Mode]Interpreter{
	core.ModeChecklist:      ChecklistInterpreter{},
	core.ModeTracker:        TrackerInterpreter{},
	core.ModeJournal:        JournalInterpreter{},
	core.ModeTabular:        TabularInterpreter{},
	core.ModeBudget:         BudgetInterpreter{},
	core.ModeRecurringDates: RecurringInterpreter{},
	core.ModeTravels:        TravelsInterpreter{},
}

// Get returns the interpreter for a mode. Modes are validated at
// subcategory creation, so a miss here means a programming error or a
// database written by a newer release.
func Get(mode core.Mode) (Interpreter, error) {
	in, ok := interpreters[mode]
	if !ok {
		return nil, fmt.Errorf("no interpreter for mode %q", mode)
	}
	return in, nil
}

// Register installs an interpreter, replacing any existing one for the
// same mode.
func Register(in Interpreter) {
	interpreters[in.Mode()] = in
}

// decodePayload unmarshals a raw body into a typed payload. An empty body
// decodes to the zero payload so required-field validation owns the error.
func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}
	return nil
}

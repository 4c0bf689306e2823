package modes

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matheob255/life-hub/internal/core"
)

// BudgetPayload is one transaction. The month bucket is derived from the
// transaction date, never supplied directly.
type BudgetPayload struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Date   string `json:"date,omitempty"`
}

type BudgetPatch struct {
	Title  *string `json:"title,omitempty"`
	Amount *string `json:"amount,omitempty"`
	Type   *string `json:"type,omitempty"`
	Date   *string `json:"date,omitempty"`
}

type BudgetEntry struct {
	ID     int64                `json:"id"`
	Title  string               `json:"title"`
	Amount string               `json:"amount"`
	Type   core.TransactionType `json:"type"`
	Date   string               `json:"date"`
}

// BudgetView is one month of transactions with running totals. Totals are
// summed in cents and rendered back as decimal text.
type BudgetView struct {
	Month      string        `json:"month"`
	MonthLabel string        `json:"monthLabel"`
	PrevMonth  string        `json:"prevMonth"`
	NextMonth  string        `json:"nextMonth"`
	Entries    []BudgetEntry `json:"entries"`
	Income     string        `json:"income"`
	Expenses   string        `json:"expenses"`
	Balance    string        `json:"balance"`
}

type BudgetInterpreter struct{}

func (BudgetInterpreter) Mode() core.Mode { return core.ModeBudget }

func (BudgetInterpreter) EncodeCreate(sub core.Subcategory, raw json.RawMessage) (core.Item, error) {
	var p BudgetPayload
	if err := decodePayload(raw, &p); err != nil {
		return core.Item{}, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	txType, err := core.ParseTransactionType(p.Type)
	if err != nil {
		return core.Item{}, err
	}
	if _, err := core.ParseAmountCents(p.Amount); err != nil {
		return core.Item{}, err
	}
	date := strings.TrimSpace(p.Date)
	if date == "" {
		date = core.Today()
	} else if err := core.ValidateDate(date); err != nil {
		return core.Item{}, err
	}
	monthKey, err := core.MonthKeyOfDate(date)
	if err != nil {
		return core.Item{}, err
	}
	return core.Item{
		SubcategoryID: sub.ID,
		Title:         strings.TrimSpace(p.Title),
		Value:         monthKey,
		Date:          date,
		Transaction:   txType,
		Amount:        strings.TrimSpace(strings.ReplaceAll(p.Amount, ",", ".")),
	}, nil
}

func (BudgetInterpreter) EncodePatch(_ core.Subcategory, existing core.Item, raw json.RawMessage) (core.ItemPatch, error) {
	var p BudgetPatch
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
	if p.Amount != nil {
		if _, err := core.ParseAmountCents(*p.Amount); err != nil {
			return core.ItemPatch{}, err
		}
		a := strings.TrimSpace(strings.ReplaceAll(*p.Amount, ",", "."))
		patch.Amount = &a
	}
	if p.Type != nil {
		txType, err := core.ParseTransactionType(*p.Type)
		if err != nil {
			return core.ItemPatch{}, err
		}
		patch.Transaction = &txType
	}
	if p.Date != nil {
		d := strings.TrimSpace(*p.Date)
		if err := core.ValidateDate(d); err != nil {
			return core.ItemPatch{}, err
		}
		monthKey, err := core.MonthKeyOfDate(d)
		if err != nil {
			return core.ItemPatch{}, err
		}
		patch.Date = &d
		// The month bucket follows the date.
		patch.Value = &monthKey
	}
	return patch, nil
}

func (BudgetInterpreter) View(_ core.Subcategory, items []core.Item, req ViewRequest) (any, error) {
	month := req.Month
	if month == "" {
		monthKey, err := core.MonthKeyOfDate(req.Today)
		if err != nil {
			return nil, err
		}
		month = monthKey
	}
	if _, _, err := core.ParseMonthKey(month); err != nil {
		return nil, err
	}
	prev, _ := core.AddMonths(month, -1)
	next, _ := core.AddMonths(month, 1)

	view := BudgetView{
		Month:      month,
		MonthLabel: core.FormatMonthKey(month),
		PrevMonth:  prev,
		NextMonth:  next,
		Entries:    []BudgetEntry{},
	}

	var incomeCents, expenseCents int64
	sorted := append([]core.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	for _, it := range sorted {
		if it.Value != month {
			continue
		}
		cents := core.AmountCents(it.Amount)
		switch it.Transaction {
		case core.TransactionIncome:
			incomeCents += cents
		case core.TransactionExpense:
			expenseCents += cents
		}
		view.Entries = append(view.Entries, BudgetEntry{
			ID: it.ID, Title: it.Title, Amount: it.Amount,
			Type: it.Transaction, Date: it.Date,
		})
	}

	view.Income = core.FormatCents(incomeCents)
	view.Expenses = core.FormatCents(expenseCents)
	view.Balance = core.FormatCents(incomeCents - expenseCents)
	return view, nil
}

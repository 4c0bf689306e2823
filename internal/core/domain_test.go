package core

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	// Leading whitespace is tolerated, unknown names are not.
	if got, err := ParseMode("  budget "); err != nil || got != ModeBudget {
		t.Errorf("ParseMode with padding = %q, %v", got, err)
	}
	for _, in := range []string{"", "Checklist", "recurring"} {
		if _, err := ParseMode(in); !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMode(%q) err = %v, want ErrInvalidMode", in, err)
		}
	}
}

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		in      string
		want    Urgency
		wantErr bool
	}{
		{"low", UrgencyLow, false},
		{"medium", UrgencyMedium, false},
		{"high", UrgencyHigh, false},
		{"", "", false},
		{"   ", "", false},
		{"urgent", "", true},
	}
	for _, tt := range tests {
		got, err := ParseUrgency(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidUrgency) {
				t.Errorf("ParseUrgency(%q) err = %v, want ErrInvalidUrgency", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseUrgency(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	if got, err := ParseTransactionType("income"); err != nil || got != TransactionIncome {
		t.Errorf("income = %q, %v", got, err)
	}
	if got, err := ParseTransactionType(" expense"); err != nil || got != TransactionExpense {
		t.Errorf("expense = %q, %v", got, err)
	}
	for _, in := range []string{"", "transfer", "Income"} {
		if _, err := ParseTransactionType(in); !errors.Is(err, ErrInvalidTransactionType) {
			t.Errorf("ParseTransactionType(%q) err = %v, want ErrInvalidTransactionType", in, err)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-08-28"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, in := range []string{"", "2026-8-28", "28-08-2026", "2026-02-30", "tomorrow"} {
		if err := ValidateDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValidateDate(%q) err = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestIsValidation(t *testing.T) {
	for _, err := range []error{ErrEmptyTitle, ErrInvalidMode, ErrInvalidPayload, ErrInvalidSection} {
		if !IsValidation(err) {
			t.Errorf("IsValidation(%v) = false", err)
		}
	}
	for _, err := range []error{ErrNotFound, ErrConstraint, errors.New("boom")} {
		if IsValidation(err) {
			t.Errorf("IsValidation(%v) = true", err)
		}
	}
}

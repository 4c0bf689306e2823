package core

import (
	"errors"
	"testing"
)

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"2100.50", 210050, false},
		{"600", 60000, false},
		{".5", 50, false},
		{"0.005", 1, false},
		{"1.999", 200, false},
		{"1.994", 199, false},
		{"", 0, true},
		{"  ", 0, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"12a", 0, true},
		{"99999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmountCents(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmountCents(%q) err = %v, want ErrInvalidAmount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmountCents(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmountCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountCentsTolerant(t *testing.T) {
	if got := AmountCents("nonsense"); got != 0 {
		t.Errorf("AmountCents(nonsense) = %d, want 0", got)
	}
	if got := AmountCents("3.50"); got != 350 {
		t.Errorf("AmountCents(3.50) = %d, want 350", got)
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{210050, "2100.50"},
		{60000, "600"},
		{1, "0.01"},
		{0, "0"},
		{-150050, "-1500.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

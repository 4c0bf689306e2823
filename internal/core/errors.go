package core

import "errors"

// Store-level failures.
var (
	// ErrNotFound is returned on update/delete of an unknown row.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned when a write references a missing parent
	// row, e.g. an item pointing at a dangling subcategory.
	ErrConstraint = errors.New("constraint violation")
)

// Validation failures. A write that fails validation is refused without
// side effects; the HTTP layer maps these to a 422 with no body.
var (
	ErrInvalidPayload         = errors.New("invalid payload")
	ErrEmptyTitle             = errors.New("empty title")
	ErrEmptyName              = errors.New("empty name")
	ErrEmptyValue             = errors.New("empty value")
	ErrEmptyLabel             = errors.New("empty label")
	ErrInvalidMode            = errors.New("invalid mode")
	ErrInvalidUrgency         = errors.New("invalid urgency")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidDay             = errors.New("invalid day of month")
	ErrInvalidMonthKey        = errors.New("invalid month key")
	ErrInvalidMonthName       = errors.New("invalid month name")
	ErrInvalidSection         = errors.New("invalid section")
)

var validationErrs = []error{
	ErrInvalidPayload,
	ErrEmptyTitle,
	ErrEmptyName,
	ErrEmptyValue,
	ErrEmptyLabel,
	ErrInvalidMode,
	ErrInvalidUrgency,
	ErrInvalidTransactionType,
	ErrInvalidAmount,
	ErrInvalidDate,
	ErrInvalidDay,
	ErrInvalidMonthKey,
	ErrInvalidMonthName,
	ErrInvalidSection,
}

// IsValidation reports whether err belongs to the validation taxonomy.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

package models

import "errors"

// Validation failures. All of them are recoverable at the call site.
var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrSplitMismatch        = errors.New("split amounts must sum to the expense amount")
	ErrPercentageMismatch   = errors.New("percentages must sum to 100")
	ErrAdjustmentMismatch   = errors.New("adjustments must sum to zero")
	ErrPayerMismatch        = errors.New("payer amounts must sum to the expense amount")
	ErrSelfSettlement       = errors.New("cannot settle up with yourself")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrUnknownSplitType     = errors.New("unknown split type")
	ErrDuplicateMember      = errors.New("a member with this name already exists")
	ErrInvalidBudget        = errors.New("invalid budget")
	ErrEmptyName            = errors.New("name is required")
	ErrInvalidDate          = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
)

// ErrNotFound is returned when a referenced group, expense, settlement,
// budget, member or user does not exist.
var ErrNotFound = errors.New("not found")

var validationErrors = []error{
	ErrNoParticipants,
	ErrSplitMismatch,
	ErrPercentageMismatch,
	ErrAdjustmentMismatch,
	ErrPayerMismatch,
	ErrSelfSettlement,
	ErrInvalidAmount,
	ErrDuplicateParticipant,
	ErrUnknownSplitType,
	ErrInvalidBudget,
	ErrEmptyName,
	ErrInvalidDate,
	ErrUnsupportedFormat,
}

// IsValidation reports whether err wraps one of the input validation errors.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

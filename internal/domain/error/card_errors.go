package error

import "errors"

// Card domain errors.
var (
	// ErrCardNotFound is returned when a card is not found in the system.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidCycleDay is returned when a closing or due day is outside 1-31.
	ErrInvalidCycleDay = errors.New("cycle day must be between 1 and 31")

	// ErrInvalidCreditLimit is returned when the credit limit is negative.
	ErrInvalidCreditLimit = errors.New("credit limit must not be negative")

	// ErrInvalidAvailableCredit is returned when the available credit is negative.
	ErrInvalidAvailableCredit = errors.New("available credit must not be negative")
)

// CardErrorCode defines error codes for card errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCycleDay        CardErrorCode = "CRD-010001"
	ErrCodeInvalidCreditLimit     CardErrorCode = "CRD-010002"
	ErrCodeInvalidAvailableCredit CardErrorCode = "CRD-010003"
	ErrCodeMissingCardFields      CardErrorCode = "CRD-010004"

	// Lookup errors (02XXXX)
	ErrCodeCardNotFound CardErrorCode = "CRD-020001"
)

// CardError represents a card error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

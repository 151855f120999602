package error

import "errors"

// Payment domain errors, covering scheduled-payment templates and payment
// instances.
var (
	// ErrInstanceNotFound is returned when a payment instance is not found.
	ErrInstanceNotFound = errors.New("payment instance not found")

	// ErrScheduledPaymentNotFound is returned when a scheduled payment template is not found.
	ErrScheduledPaymentNotFound = errors.New("scheduled payment not found")

	// ErrInstanceNotOpen is returned when registering a payment against an
	// instance that is not pending or partial.
	ErrInstanceNotOpen = errors.New("payment instance is not open")

	// ErrInvalidPaymentAmount is returned when a payment amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// ErrInvalidPaymentType is returned when the payment type is invalid.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidFrequency is returned when the template frequency is invalid.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrMissingRecurrenceRule is returned when a template lacks the fields
	// its frequency requires (due day, day of week, or payment date).
	ErrMissingRecurrenceRule = errors.New("missing recurrence rule for frequency")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount  PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidPaymentType    PaymentErrorCode = "PAY-010002"
	ErrCodeInvalidFrequency      PaymentErrorCode = "PAY-010003"
	ErrCodeMissingRecurrenceRule PaymentErrorCode = "PAY-010004"
	ErrCodeMissingPaymentFields  PaymentErrorCode = "PAY-010005"

	// Lookup errors (02XXXX)
	ErrCodeInstanceNotFound         PaymentErrorCode = "PAY-020001"
	ErrCodeScheduledPaymentNotFound PaymentErrorCode = "PAY-020002"

	// State errors (03XXXX)
	ErrCodeInstanceNotOpen PaymentErrorCode = "PAY-030001"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

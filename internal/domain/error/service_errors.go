package error

import "errors"

// Service domain errors.
var (
	// ErrServiceNotFound is returned when a service is not found in the system.
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceLineNotFound is returned when a service line is not found.
	ErrServiceLineNotFound = errors.New("service line not found")

	// ErrInvalidServiceType is returned when the service type is invalid.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidPaymentMethod is returned when the payment method is invalid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrMissingCycleConfig is returned when a billing-cycle service lacks its cycle days.
	ErrMissingCycleConfig = errors.New("billing cycle service requires cycle and due days")
)

// ServiceErrorCode defines error codes for service errors.
// Format: SVC-XXYYYY where XX is category and YYYY is specific error.
type ServiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidServiceType   ServiceErrorCode = "SVC-010001"
	ErrCodeInvalidPaymentMethod ServiceErrorCode = "SVC-010002"
	ErrCodeMissingCycleConfig   ServiceErrorCode = "SVC-010003"
	ErrCodeMissingServiceFields ServiceErrorCode = "SVC-010004"

	// Lookup errors (02XXXX)
	ErrCodeServiceNotFound     ServiceErrorCode = "SVC-020001"
	ErrCodeServiceLineNotFound ServiceErrorCode = "SVC-020002"
)

// ServiceError represents a service error with code and message.
type ServiceError struct {
	Code    ServiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError with the given code and message.
func NewServiceError(code ServiceErrorCode, message string, err error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

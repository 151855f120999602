package error

import "errors"

// Email queue domain errors.
var (
	// ErrEmailJobNotFound is returned when an email job is not found in the queue.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrEmailSendFailed is returned when the email provider rejects a send.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrEmailPermanentFailure is returned for failures that must not be retried.
	ErrEmailPermanentFailure = errors.New("permanent email failure")
)

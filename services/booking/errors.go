package booking

import "fmt"

// Validation error codes, checked in this order.
const (
	CodeMissingName       = "missingName"
	CodeMissingDepartment = "missingDepartment"
	CodeInvalidDate       = "invalidDate"
	CodeInvalidSlot       = "invalidSlot"
	CodeInvalidRoom       = "invalidRoom"
)

// ValidationError is a user-correctable rejection of a candidate booking.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// StorageError means the ledger did not accept the booking.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storageError: booking was not recorded: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")

	// Storage errors (connectivity, constraint violations)
	ErrStorage = errors.New("storage error")
)

// Scheduling Errors
var (
	ErrRoomConflict          = errors.New("room already booked for this day and time slot")
	ErrInstructorConflict    = errors.New("instructor already scheduled for this day and time slot")
	ErrInstructorNotEligible = errors.New("instructor not assigned to this subject")
	ErrAlreadyEnrolled       = errors.New("student already allocated to this class")
	ErrClassNotFound         = errors.New("class not found")
)

// Catalog Errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInstructorNotFound = errors.New("instructor not found")
)

// Ledger Errors
var (
	// ErrNoFeeStructure means no fee applies to the (program, semester) pair.
	// Callers treat it as "not applicable", never as a failure shown to the user.
	ErrNoFeeStructure = errors.New("no fee structure defined")
	// ErrAccessDenied is returned when outstanding fees block a transcript.
	ErrAccessDenied = errors.New("access denied: outstanding fees")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewInvalidInputError creates a new custom error for malformed caller input
func NewInvalidInputError(message string) error {
	return &CustomError{
		Err:     ErrInvalidInput,
		Message: message,
	}
}

// NewStorageError wraps a driver failure so callers can match it with errors.Is(err, ErrStorage)
// while the original cause stays reachable through Cause.
func NewStorageError(op string, cause error) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: op + ": " + cause.Error(),
		Cause:   cause,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Cause     error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// DetailsOf returns the details attached to the first CustomError in the chain, if any.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

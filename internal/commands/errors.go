package commands

import "fmt"

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// UserErrorf creates a user-facing error from a format string.
func UserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

var (
	errNotHere     = NewUserError("They aren't here.")
	errNotCarrying = NewUserError("You're not carrying that.")
)

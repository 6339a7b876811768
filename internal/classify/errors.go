package classify

import "fmt"

// Error represents a failure of the classification oracle call or of parsing
// its reply.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("classification error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

package applicator

import "fmt"

// Error represents a failed submission, naming the step that broke.
type Error struct {
	Step  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("submission error at %s: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("submission error at %s", e.Step)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

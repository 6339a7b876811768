// Package extract reads structured posting fields from a rendered detail page.
package extract

import "fmt"

// Error represents a failed extraction of a required posting field.
type Error struct {
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

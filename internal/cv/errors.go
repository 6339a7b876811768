package cv

import "fmt"

// TemplateError represents a failure loading or parsing a category template.
type TemplateError struct {
	Category string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error for %s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error for %s: %s", e.Category, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing the PDF file. Unlike the
// tailored-summary step, rendering failures are fatal to the posting.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

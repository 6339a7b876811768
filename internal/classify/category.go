// Package classify assigns a category to a posting via the remote LLM oracle.
package classify

// Category is the classification assigned to a posting. It selects which CV
// template is used; CategoryNone terminates the pipeline for that posting.
type Category string

// Category values.
const (
	CategoryBackend   Category = "backend"
	CategoryFrontend  Category = "frontend"
	CategoryFullstack Category = "fullstack"
	CategoryNone      Category = "none"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBackend, CategoryFrontend, CategoryFullstack, CategoryNone:
		return true
	}
	return false
}

// Result is the oracle's verdict for one posting. CategoryNone is a valid
// terminal outcome, not an error; the reason is surfaced for observability.
type Result struct {
	Category Category `json:"job_category"`
	Reason   string   `json:"reason"`
}

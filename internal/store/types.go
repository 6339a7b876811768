package store

import "time"

// Status is the review state of a stored application. The pipeline only ever
// writes StatusSubmitted; the other values are set by later review workflows.
type Status string

// Application status values.
const (
	StatusSubmitted  Status = "submitted"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
	StatusHired      Status = "hired"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusProcessing, StatusFailed, StatusHired:
		return true
	}
	return false
}

// Application is the durable record of one submission attempt. Link is the
// posting identifier and carries the uniqueness constraint.
type Application struct {
	ID          int64     `json:"id"`
	Link        string    `json:"link"`
	Status      Status    `json:"status"`
	CompanyName string    `json:"company_name"`
	Role        string    `json:"role"`
	Location    string    `json:"location"`
	SalaryMin   int64     `json:"salary_min"` // 0 means unspecified/negotiable, stored as NULL
	Description string    `json:"description"`
	CVSummary   string    `json:"cv_summary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

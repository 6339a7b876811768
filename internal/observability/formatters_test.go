package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwijayanto/autoapply/internal/extract"
)

func TestPrintPosting(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	printer.PrintPosting(&extract.Posting{
		Link:        "https://glints.com/id/opportunities/jobs/x",
		Role:        "Backend Engineer",
		CompanyName: "PT Maju Bersama",
		Location:    "Jakarta",
		SalaryMin:   5000000,
	})

	out := sb.String()
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "PT Maju Bersama")
	assert.Contains(t, out, "IDR 5000000")
}

func TestPrintPostingNegotiableSalary(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	printer.PrintPosting(&extract.Posting{Role: "r", CompanyName: "c"})

	assert.Contains(t, sb.String(), "negotiable")
}

func TestPrintPostingNil(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintPosting(nil)
	assert.Empty(t, sb.String())
}

func TestPrintBatchSummary(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintBatchSummary(5, 2, 1, 1, 1)

	out := sb.String()
	assert.Contains(t, out, "Batch Summary")
	assert.Contains(t, out, "Submitted: 2")
	assert.Contains(t, out, "Failed:    1")
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwijayanto/autoapply/internal/extract"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPosting outputs a human-readable summary of an extracted posting.
func (p *Printer) PrintPosting(posting *extract.Posting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", posting.Role))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", posting.CompanyName))
	if posting.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", posting.Location))
	}
	if posting.SalaryMin > 0 {
		sb.WriteString(fmt.Sprintf("Salary:   IDR %d\n", posting.SalaryMin))
	} else {
		sb.WriteString("Salary:   negotiable\n")
	}
	sb.WriteString(fmt.Sprintf("Link:     %s", posting.Link))

	p.printBox("Posting", sb.String())
}

// PrintBatchSummary outputs the per-outcome counts for a completed batch.
func (p *Printer) PrintBatchSummary(total, submitted, skipped, rejected, failed int) {
	content := fmt.Sprintf(
		"Postings:  %d\nSubmitted: %d\nSkipped:   %d\nRejected:  %d\nFailed:    %d",
		total, submitted, skipped, rejected, failed)
	p.printBox("Batch Summary", content)
}

package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwijayanto/autoapply/internal/browser"
)

// DefaultFieldTimeout bounds the wait for each labeled region independently.
const DefaultFieldTimeout = 5 * time.Second

// Posting is a normalized job listing. Immutable once extracted; it is only
// persisted as part of an application record.
type Posting struct {
	Link        string
	Role        string
	CompanyName string
	Location    string
	SalaryMin   int64 // 0 means unspecified/negotiable
	Description string
}

// Selectors names the labeled regions of a posting detail page.
type Selectors struct {
	Role             string
	CompanyName      string
	Location         string
	Salary           string
	DescriptionTitle string
	DescriptionBody  string
}

// Extractor reads posting fields from one detail page.
type Extractor struct {
	page         browser.Page
	sel          Selectors
	fieldTimeout time.Duration
}

// New creates an Extractor bound to a page.
func New(page browser.Page, sel Selectors) *Extractor {
	return &Extractor{page: page, sel: sel, fieldTimeout: DefaultFieldTimeout}
}

// WithFieldTimeout overrides the per-field wait bound.
func (e *Extractor) WithFieldTimeout(d time.Duration) *Extractor {
	e.fieldTimeout = d
	return e
}

// Extract produces a Posting for the page. Role, company and description are
// required; a miss on any of them fails the posting. Location and salary
// degrade to zero values when absent.
func (e *Extractor) Extract(link string) (*Posting, error) {
	role, err := e.page.Text(e.sel.Role, e.fieldTimeout)
	if err != nil {
		return nil, &Error{Field: "role", Message: "required field missing", Cause: err}
	}

	company, err := e.page.Text(e.sel.CompanyName, e.fieldTimeout)
	if err != nil {
		return nil, &Error{Field: "company", Message: "required field missing", Cause: err}
	}

	// Optional: absent location degrades to empty.
	location, err := e.page.Text(e.sel.Location, e.fieldTimeout)
	if err != nil {
		location = ""
	}

	// Optional: no salary badge means negotiable.
	var salaryMin int64
	if salaryText, err := e.page.Text(e.sel.Salary, e.fieldTimeout); err == nil {
		salaryMin = ParseSalaryFloor(salaryText)
	}

	description, err := e.description()
	if err != nil {
		return nil, err
	}

	return &Posting{
		Link:        link,
		Role:        strings.TrimSpace(role),
		CompanyName: strings.TrimSpace(company),
		Location:    strings.TrimSpace(location),
		SalaryMin:   salaryMin,
		Description: description,
	}, nil
}

// description joins the description title and body. The body is rendered
// HTML with nested lists, so it goes through an HTML-to-text pass instead of
// a raw inner-text read.
func (e *Extractor) description() (string, error) {
	title, err := e.page.Text(e.sel.DescriptionTitle, e.fieldTimeout)
	if err != nil {
		return "", &Error{Field: "description", Message: "title region missing", Cause: err}
	}

	bodyHTML, err := e.page.HTML(e.sel.DescriptionBody, e.fieldTimeout)
	if err != nil {
		return "", &Error{Field: "description", Message: "body region missing", Cause: err}
	}

	body, err := htmlToText(bodyHTML)
	if err != nil {
		return "", &Error{Field: "description", Message: "failed to parse body HTML", Cause: err}
	}

	return strings.TrimSpace(title) + "\n" + body, nil
}

// htmlToText extracts readable text from an HTML fragment.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	return cleanWhitespace(text), nil
}

// cleanWhitespace collapses intra-line whitespace and drops blank lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

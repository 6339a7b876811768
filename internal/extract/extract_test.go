package extract

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage serves canned text/HTML per selector. A missing selector behaves
// like a wait timeout.
type fakePage struct {
	texts map[string]string
	htmls map[string]string
}

func (p *fakePage) Navigate(string, time.Duration) error    { return nil }
func (p *fakePage) WaitVisible(string, time.Duration) error { return nil }

func (p *fakePage) Text(selector string, _ time.Duration) (string, error) {
	if text, ok := p.texts[selector]; ok {
		return text, nil
	}
	return "", fmt.Errorf("wait visible %s: timeout", selector)
}

func (p *fakePage) HTML(selector string, _ time.Duration) (string, error) {
	if html, ok := p.htmls[selector]; ok {
		return html, nil
	}
	return "", fmt.Errorf("wait visible %s: timeout", selector)
}

func (p *fakePage) Count(string, time.Duration) (int, error) { return 0, nil }
func (p *fakePage) AttributeNth(string, int, string, time.Duration) (string, error) {
	return "", nil
}
func (p *fakePage) Click(string, time.Duration) error                { return nil }
func (p *fakePage) SetUploadFile(string, string, time.Duration) error { return nil }
func (p *fakePage) Location(time.Duration) (string, error)           { return "", nil }

var testSelectors = Selectors{
	Role:             "#role",
	CompanyName:      "#company",
	Location:         "#location",
	Salary:           "#salary",
	DescriptionTitle: "#desc-title",
	DescriptionBody:  "#desc-body",
}

func fullPage() *fakePage {
	return &fakePage{
		texts: map[string]string{
			"#role":       "  Backend Engineer ",
			"#company":    "PT Maju Bersama",
			"#location":   "Jakarta Selatan",
			"#salary":     "IDR 5.000.000 - 8.000.000/Bulan",
			"#desc-title": "Job Description",
		},
		htmls: map[string]string{
			"#desc-body": "<div><p>Build APIs with   Golang.</p><ul><li>PostgreSQL</li><li>Docker</li></ul></div>",
		},
	}
}

func TestExtract(t *testing.T) {
	posting, err := New(fullPage(), testSelectors).Extract("https://glints.com/id/opportunities/jobs/x")
	require.NoError(t, err)

	assert.Equal(t, "https://glints.com/id/opportunities/jobs/x", posting.Link)
	assert.Equal(t, "Backend Engineer", posting.Role)
	assert.Equal(t, "PT Maju Bersama", posting.CompanyName)
	assert.Equal(t, "Jakarta Selatan", posting.Location)
	assert.Equal(t, int64(5000000), posting.SalaryMin)
	assert.Equal(t, "Job Description\nBuild APIs with Golang.\nPostgreSQL\nDocker", posting.Description)
}

func TestExtractOptionalFieldsDegrade(t *testing.T) {
	page := fullPage()
	delete(page.texts, "#location")
	delete(page.texts, "#salary")

	posting, err := New(page, testSelectors).Extract("link")
	require.NoError(t, err)

	assert.Empty(t, posting.Location)
	assert.Zero(t, posting.SalaryMin)
}

func TestExtractRequiredFieldsFatal(t *testing.T) {
	tests := []struct {
		name     string
		remove   string
		isHTML   bool
		wantWord string
	}{
		{name: "missing role", remove: "#role", wantWord: "role"},
		{name: "missing company", remove: "#company", wantWord: "company"},
		{name: "missing description title", remove: "#desc-title", wantWord: "description"},
		{name: "missing description body", remove: "#desc-body", isHTML: true, wantWord: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fullPage()
			if tt.isHTML {
				delete(page.htmls, tt.remove)
			} else {
				delete(page.texts, tt.remove)
			}

			_, err := New(page, testSelectors).Extract("link")
			require.Error(t, err)

			var extractErr *Error
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.wantWord, extractErr.Field)
		})
	}
}

func TestParseSalaryFloor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{name: "dotted range", text: "IDR 5.000.000 - 8.000.000/Bulan", want: 5000000},
		{name: "comma separators", text: "IDR 4,500,000 - 6,000,000/Bulan", want: 4500000},
		{name: "newlines in badge", text: "IDR\n5.000.000\n-\n8.000.000/Bulan", want: 5000000},
		{name: "no currency token", text: "Gaji dapat dinegosiasikan", want: 0},
		{name: "empty", text: "", want: 0},
		{name: "lone amount without range", text: "IDR 5.000.000/Bulan", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSalaryFloor(tt.text))
		})
	}
}

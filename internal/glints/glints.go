// Package glints defines the Glints job board: listing URL construction and
// the CSS/XPath selectors for its listing cards, detail pages and apply
// dialog. Everything here is site markup knowledge; no behavior.
package glints

import (
	"net/url"
	"strings"

	"github.com/mwijayanto/autoapply/internal/applicator"
	"github.com/mwijayanto/autoapply/internal/extract"
)

// BaseURL is the site root; card hrefs are relative to it.
const BaseURL = "https://glints.com"

// defaultExperienceRanges limits discovery to junior postings; senior ones
// are rejected by the classifier anyway.
var defaultExperienceRanges = []string{
	"ONE_TO_THREE_YEARS",
	"FRESH_GRAD",
	"NO_EXPERIENCE",
	"LESS_THAN_A_YEAR",
}

// Provider bundles everything the pipeline needs to know about the site.
type Provider struct {
	ListingURL string
	// CardLinks matches the anchor of each job card on the listing page.
	CardLinks string
	// Cards matches the job card containers; used to wait for the listing
	// to finish rendering.
	Cards   string
	Extract extract.Selectors
	Apply   applicator.Selectors
}

// NewProvider builds the provider for a search keyword.
func NewProvider(keyword string) Provider {
	return Provider{
		ListingURL: ListingURL(keyword),
		Cards:      ".JobCardsc__JobcardContainer-sc-hmqj50-0",
		CardLinks:  ".JobCardsc__JobcardContainer-sc-hmqj50-0 a[href*='/opportunities/jobs/']",
		Extract: extract.Selectors{
			Role:             "h1[aria-label='Job Title'].TopFoldsc__JobOverViewTitle-sc-1fbktg5-3",
			CompanyName:      "div.AboutCompanySectionsc__Title-sc-c7oevo-6",
			Location:         "p.TypographyStyles__StyledTypography-sc-ro16eu-0.bGShET",
			Salary:           "span.TopFoldsc__BasicSalary-sc-1fbktg5-13",
			DescriptionTitle: "div.JobDescriptionsc__TitleContainer-sc-22zrgx-1.hiYwUK",
			DescriptionBody:  "div.JobDescriptionsc__DescriptionContainer-sc-22zrgx-2.btZuDu",
		},
		Apply: applicator.Selectors{
			ApplyButton:   `//button[contains(., "Lamar") and not(@disabled)]`,
			FileInput:     `input[type="file"].HiddenFileInputsc__FileInput-sc-hz4dcq-0`,
			DeleteButton:  `//button[contains(@class, "ResumeFieldsc__DeleteButton") and contains(., "Hapus file")]`,
			UploadButton:  `//button[contains(@class, "ResumeFieldsc__UploadResumeButton") and contains(., "Upload CV-mu")]`,
			ResumeDetail:  `div.ResumeFieldsc__EditResumeContainer-sc-yk9awg-3`,
			FileNameXPath: `//p[contains(@class, "ResumeFieldsc__ResumeFileName") and contains(., "%s")]`,
			SendButton:    `//button[contains(., "Kirim")]`,
			Confirmation:  `//*[contains(., "Lamaran terkirim")]`,
		},
	}
}

// ListingURL builds the explore URL for a keyword with the default country
// and experience filters.
func ListingURL(keyword string) string {
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("country", "ID")
	query.Set("locationName", "All Cities/Provinces")
	query.Set("yearsOfExperienceRanges", strings.Join(defaultExperienceRanges, ","))
	return BaseURL + "/id/opportunities/jobs/explore?" + query.Encode()
}

// AbsoluteURL resolves a card href against the site root.
func AbsoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return BaseURL + href
}

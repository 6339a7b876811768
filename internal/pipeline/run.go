package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwijayanto/autoapply/internal/applicator"
	"github.com/mwijayanto/autoapply/internal/browser"
	"github.com/mwijayanto/autoapply/internal/classify"
	"github.com/mwijayanto/autoapply/internal/cv"
	"github.com/mwijayanto/autoapply/internal/extract"
	"github.com/mwijayanto/autoapply/internal/glints"
	"github.com/mwijayanto/autoapply/internal/observability"
	"github.com/mwijayanto/autoapply/internal/store"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Link    string `json:"link"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store is the slice of the record store the pipeline needs.
type Store interface {
	Exists(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, app *store.Application) (*store.Application, error)
}

// Classifier decides whether a posting is worth applying to.
type Classifier interface {
	Classify(ctx context.Context, role, description string, salaryMin int64) (*classify.Result, error)
}

// Generator produces the tailored CV artifact for a posting.
type Generator interface {
	Generate(ctx context.Context, category classify.Category, vacancy string) (*cv.Artifact, error)
}

// Tab is a single browser tab owned by the pipeline for one posting.
type Tab interface {
	browser.Page
	Close()
}

// Browser opens tabs against a shared browser session.
type Browser interface {
	NewTab() (Tab, error)
}

// Extractor pulls the structured posting out of an open detail page.
type Extractor interface {
	Extract(link string) (*extract.Posting, error)
}

// Submitter drives the application dialog on an open detail page.
type Submitter interface {
	Submit(path string) error
}

// sessionBrowser adapts *browser.Session to the Browser interface.
type sessionBrowser struct {
	session *browser.Session
}

func (b sessionBrowser) NewTab() (Tab, error) {
	return b.session.NewTab()
}

// NewSessionBrowser wraps a live browser session for use by a Runner.
func NewSessionBrowser(s *browser.Session) Browser {
	return sessionBrowser{session: s}
}

// Config holds the collaborators and knobs for a batch run.
type Config struct {
	Store      Store
	Classifier Classifier
	Generator  Generator
	Browser    Browser
	Provider   glints.Provider

	// NewExtractor and NewSubmitter bind a fresh extractor/submitter to the
	// tab opened for each posting. Defaults use the provider's selectors.
	NewExtractor func(page browser.Page) Extractor
	NewSubmitter func(page browser.Page) Submitter

	Printer    *observability.Printer
	OnProgress ProgressCallback

	// MaxPostings caps how many job cards are processed; 0 means all.
	MaxPostings int
	Verbose     bool

	NavigateTimeout time.Duration
	ListingTimeout  time.Duration
}

// Runner walks the listing page and processes each posting to a terminal
// outcome. One Runner handles one batch.
type Runner struct {
	cfg Config
}

// New builds a Runner, filling in default factories and timeouts.
func New(cfg Config) *Runner {
	if cfg.NewExtractor == nil {
		sel := cfg.Provider.Extract
		cfg.NewExtractor = func(page browser.Page) Extractor {
			return extract.New(page, sel)
		}
	}
	if cfg.NewSubmitter == nil {
		sel := cfg.Provider.Apply
		cfg.NewSubmitter = func(page browser.Page) Submitter {
			return applicator.New(page, sel, applicator.DefaultTimeouts())
		}
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 30 * time.Second
	}
	if cfg.ListingTimeout == 0 {
		cfg.ListingTimeout = 30 * time.Second
	}
	return &Runner{cfg: cfg}
}

func (r *Runner) emit(link string, stage Stage, message string) {
	if r.cfg.OnProgress != nil {
		r.cfg.OnProgress(ProgressEvent{Link: link, Stage: stage, Message: message})
	}
}

// Run enumerates the listing and processes every job card. It returns the
// summary of all per-posting outcomes; postings processed before an abort
// keep their recorded state. The returned error is non-nil only for
// batch-fatal conditions such as the listing never loading or the record
// store becoming unreachable.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	listing, err := r.cfg.Browser.NewTab()
	if err != nil {
		return nil, fmt.Errorf("opening listing tab: %w", err)
	}
	defer listing.Close()

	fmt.Printf("Opening listing: %s\n", r.cfg.Provider.ListingURL)
	if err := listing.Navigate(r.cfg.Provider.ListingURL, r.cfg.NavigateTimeout); err != nil {
		return nil, fmt.Errorf("opening listing page: %w", err)
	}
	if err := listing.WaitVisible(r.cfg.Provider.Cards, r.cfg.ListingTimeout); err != nil {
		return nil, fmt.Errorf("job cards never rendered: %w", err)
	}

	count, err := listing.Count(r.cfg.Provider.CardLinks, r.cfg.ListingTimeout)
	if err != nil {
		return nil, fmt.Errorf("counting job cards: %w", err)
	}
	if count == 0 {
		return nil, errors.New("no job cards found on listing page")
	}
	if r.cfg.MaxPostings > 0 && count > r.cfg.MaxPostings {
		count = r.cfg.MaxPostings
	}
	fmt.Printf("Found %d job cards to process\n", count)

	summary := &Summary{}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Printf("Processing job card %d/%d...\n", i+1, count)
		href, err := listing.AttributeNth(r.cfg.Provider.CardLinks, i, "href", r.cfg.ListingTimeout)
		if err != nil {
			summary.add(failed("", StageOpen, fmt.Errorf("reading job card %d link: %w", i+1, err)))
			continue
		}
		link := glints.AbsoluteURL(href)

		outcome, err := r.processPosting(ctx, link)
		if err != nil {
			// Store unreachable. Continuing would break the duplicate
			// guarantee for every remaining posting.
			return summary, err
		}
		summary.add(outcome)
		fmt.Printf("  %s\n", outcome)
	}

	if r.cfg.Printer != nil {
		r.cfg.Printer.PrintBatchSummary(summary.Total, summary.Submitted, summary.Skipped, summary.Rejected, summary.Failed)
	}
	return summary, nil
}

// processPosting takes one posting from link to a terminal outcome. The
// returned error is non-nil only when the record store is unreachable,
// which aborts the whole batch; every other failure is folded into the
// outcome so later postings still run.
func (r *Runner) processPosting(ctx context.Context, link string) (Outcome, error) {
	tab, err := r.cfg.Browser.NewTab()
	if err != nil {
		return failed(link, StageOpen, err), nil
	}
	defer tab.Close()

	if err := tab.Navigate(link, r.cfg.NavigateTimeout); err != nil {
		return failed(link, StageOpen, err), nil
	}
	r.emit(link, StageOpen, "opened posting")

	posting, err := r.cfg.NewExtractor(tab).Extract(link)
	if err != nil {
		return failed(link, StageExtract, err), nil
	}
	if r.cfg.Verbose && r.cfg.Printer != nil {
		r.cfg.Printer.PrintPosting(posting)
	}
	r.emit(link, StageExtract, fmt.Sprintf("extracted %s at %s", posting.Role, posting.CompanyName))

	exists, err := r.cfg.Store.Exists(ctx, posting.Link)
	if err != nil {
		return Outcome{}, fmt.Errorf("record store unreachable: %w", err)
	}
	if exists {
		return skipped(link), nil
	}
	r.emit(link, StageDedup, "no prior application found")

	result, err := r.cfg.Classifier.Classify(ctx, posting.Role, posting.Description, posting.SalaryMin)
	if err != nil {
		return failed(link, StageClassify, err), nil
	}
	if result.Category == classify.CategoryNone {
		return rejected(link, result.Reason), nil
	}
	r.emit(link, StageClassify, fmt.Sprintf("classified as %s", result.Category))

	artifact, err := r.cfg.Generator.Generate(ctx, result.Category, posting.Description)
	if err != nil {
		return failed(link, StageDocument, err), nil
	}
	r.emit(link, StageDocument, fmt.Sprintf("generated %s", artifact.Path))

	// Re-check right before the irreversible submit. Another process may
	// have applied since the first check; the UNIQUE constraint on insert
	// still closes the remaining window.
	exists, err = r.cfg.Store.Exists(ctx, posting.Link)
	if err != nil {
		return Outcome{}, fmt.Errorf("record store unreachable: %w", err)
	}
	if exists {
		return skipped(link), nil
	}

	if err := r.cfg.NewSubmitter(tab).Submit(artifact.Path); err != nil {
		return failed(link, StageSubmit, err), nil
	}
	r.emit(link, StageSubmit, "application sent")

	app := &store.Application{
		Link:        posting.Link,
		Status:      store.StatusSubmitted,
		CompanyName: posting.CompanyName,
		Role:        posting.Role,
		Location:    posting.Location,
		SalaryMin:   posting.SalaryMin,
		Description: posting.Description,
		CVSummary:   artifact.Summary,
	}
	if _, err := r.cfg.Store.Insert(ctx, app); err != nil {
		if errors.Is(err, store.ErrDuplicateLink) {
			// Lost the race to another process. The submission went out
			// twice on the site, but the record stays single.
			return skipped(link), nil
		}
		return failed(link, StageRecord, err), nil
	}
	r.emit(link, StageRecord, "application recorded")

	return recorded(link), nil
}

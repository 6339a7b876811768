// Package applicator drives the irreversible submit action on a posting's
// detail page: open the apply dialog, attach the CV file, confirm.
package applicator

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mwijayanto/autoapply/internal/browser"
)

// Selectors names the controls of the apply dialog. FileNameXPath must
// contain one %s verb for the uploaded file name.
type Selectors struct {
	ApplyButton   string // enabled apply control on the detail page
	FileInput     string // hidden file input inside the dialog
	DeleteButton  string // removes a previously attached file
	UploadButton  string // visible again once the upload control has reset
	ResumeDetail  string // container shown after a successful attach
	FileNameXPath string // confirms the attached file by name
	SendButton    string // final confirmation control
	Confirmation  string // success indicator shown after sending
}

// Timeouts bounds each wait in the submit choreography.
type Timeouts struct {
	ApplyVisible  time.Duration // the apply button may render late
	Control       time.Duration // dialog controls
	UploadSettled time.Duration // the platform acknowledging the attachment
}

// DefaultTimeouts mirror the platform's observed latencies: uploads take
// noticeably longer than plain control renders.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ApplyVisible:  15 * time.Second,
		Control:       5 * time.Second,
		UploadSettled: 15 * time.Second,
	}
}

// Applicator submits one application on one detail page.
type Applicator struct {
	page     browser.Page
	sel      Selectors
	timeouts Timeouts
}

// New creates an Applicator bound to a page.
func New(page browser.Page, sel Selectors, timeouts Timeouts) *Applicator {
	return &Applicator{page: page, sel: sel, timeouts: timeouts}
}

// Submit attaches the CV at path and confirms the application. Any missing
// control or timeout is fatal to the posting: a partial submission is not
// retried here, and because no record is written for it, a later run will
// legitimately retry the posting.
func (a *Applicator) Submit(path string) error {
	// The apply control must be present and enabled before anything else.
	if err := a.page.WaitVisible(a.sel.ApplyButton, a.timeouts.ApplyVisible); err != nil {
		return &Error{Step: "apply-button", Cause: err}
	}
	if err := a.page.Click(a.sel.ApplyButton, a.timeouts.Control); err != nil {
		return &Error{Step: "apply-button", Cause: err}
	}

	// A file from an earlier application may still be attached. Remove it
	// and wait for the upload control to reset before attaching ours.
	if err := a.page.WaitVisible(a.sel.DeleteButton, a.timeouts.Control); err == nil {
		if err := a.page.Click(a.sel.DeleteButton, a.timeouts.Control); err != nil {
			return &Error{Step: "remove-existing-file", Cause: err}
		}
		if err := a.page.WaitVisible(a.sel.UploadButton, a.timeouts.Control); err != nil {
			return &Error{Step: "upload-control-reset", Cause: err}
		}
	}

	if err := a.page.SetUploadFile(a.sel.FileInput, path, a.timeouts.Control); err != nil {
		return &Error{Step: "attach-file", Cause: err}
	}

	// The platform acknowledges the attachment by showing the detail
	// container with the uploaded file's name. Confirm both before the
	// irreversible click.
	if err := a.page.WaitVisible(a.sel.ResumeDetail, a.timeouts.UploadSettled); err != nil {
		return &Error{Step: "upload-acknowledged", Cause: err}
	}
	fileNameSel := fmt.Sprintf(a.sel.FileNameXPath, filepath.Base(path))
	if err := a.page.WaitVisible(fileNameSel, a.timeouts.UploadSettled); err != nil {
		return &Error{Step: "upload-file-name", Cause: err}
	}

	if err := a.page.WaitVisible(a.sel.SendButton, a.timeouts.Control); err != nil {
		return &Error{Step: "send-button", Cause: err}
	}
	if err := a.page.Click(a.sel.SendButton, a.timeouts.Control); err != nil {
		return &Error{Step: "send-button", Cause: err}
	}

	if err := a.page.WaitVisible(a.sel.Confirmation, a.timeouts.UploadSettled); err != nil {
		return &Error{Step: "confirmation", Cause: err}
	}

	return nil
}

package cv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Page sizes accepted by the renderer.
const (
	PageSizeA4     = "A4"
	PageSizeLetter = "Letter"
)

// Renderer produces the fixed-layout CV document. Rendering is deterministic
// for the same profile: the only varying input is the tailored summary, and
// the creation date is pinned.
type Renderer struct {
	pageSize string
}

// NewRenderer creates a renderer for the given page size ("A4" or "Letter").
func NewRenderer(pageSize string) (*Renderer, error) {
	switch strings.ToLower(pageSize) {
	case "a4":
		pageSize = PageSizeA4
	case "letter":
		pageSize = PageSizeLetter
	default:
		return nil, fmt.Errorf("invalid page size %q: choose A4 or Letter", pageSize)
	}
	return &Renderer{pageSize: pageSize}, nil
}

// Render writes the profile as a PDF to outPath and validates the result.
func (r *Renderer) Render(profile *Profile, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &RenderError{Message: "failed to create output directory", Cause: err}
	}

	pdf := fpdf.New("P", "mm", r.pageSize, "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetTitle(profile.PersonalInfo.Name+" CV", false)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r.writePersonalInfo(pdf, profile.PersonalInfo)
	if len(profile.Experience) > 0 {
		r.writeSectionHeading(pdf, "Experience")
		for _, exp := range profile.Experience {
			r.writeCompanyExperience(pdf, exp)
		}
	}
	if len(profile.Education) > 0 {
		r.writeSectionHeading(pdf, "Education")
		for _, edu := range profile.Education {
			r.writeEducation(pdf, edu)
		}
	}
	if len(profile.Skills) > 0 {
		r.writeSkills(pdf, profile.Skills)
	}
	if len(profile.Projects) > 0 {
		r.writeSectionHeading(pdf, "Projects")
		for _, project := range profile.Projects {
			r.writeProject(pdf, project)
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}

	// Sanity-check the produced file before it is handed to the applicator;
	// the upload control silently rejects corrupt documents.
	if err := api.ValidateFile(outPath, nil); err != nil {
		return &RenderError{Message: "rendered PDF failed validation", Cause: err}
	}

	return nil
}

func (r *Renderer) writePersonalInfo(pdf *fpdf.Fpdf, info PersonalInfo) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, info.Name, "", 1, "L", false, 0, "")

	if info.Title != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, info.Title, "", 1, "L", false, 0, "")
	}

	var contact []string
	if info.Email != "" {
		contact = append(contact, info.Email)
	}
	if info.Phone != "" {
		contact = append(contact, info.Phone)
	}
	if info.Location != "" {
		contact = append(contact, info.Location)
	}
	if info.Website != "" {
		contact = append(contact, info.Website)
	}
	if info.LinkedIn != "" {
		contact = append(contact, info.LinkedIn)
	}
	if len(contact) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, strings.Join(contact, " | "), "", "L", false)
	}

	if info.Summary != "" {
		r.writeSectionHeading(pdf, "Summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, info.Summary, "", "L", false)
	}
}

func (r *Renderer) writeSectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) writeCompanyExperience(pdf *fpdf.Fpdf, exp CompanyExperience) {
	company := exp.Company
	if exp.Location != "" {
		company += " (" + exp.Location + ")"
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, company, "", 1, "L", false, 0, "")

	for _, role := range exp.Roles {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 5, role.Title, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, dateRange(role.StartDate, role.EndDate, role.Location), "", 1, "L", false, 0, "")

		if role.Description != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, role.Description, "", "L", false)
		}
		r.writeBullets(pdf, role.Achievements)
		pdf.Ln(1)
	}
}

func (r *Renderer) writeEducation(pdf *fpdf.Fpdf, edu Education) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, edu.Degree+" - "+edu.Institution, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, dateRange(edu.StartDate, edu.EndDate, edu.Location), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if edu.GPA != "" {
		pdf.CellFormat(0, 5, "GPA: "+edu.GPA, "", 1, "L", false, 0, "")
	}
	if edu.Details != "" {
		pdf.MultiCell(0, 5, edu.Details, "", "L", false)
	}
	pdf.Ln(1)
}

func (r *Renderer) writeSkills(pdf *fpdf.Fpdf, skills []Skill) {
	r.writeSectionHeading(pdf, "Skills")
	for _, skill := range skills {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 5, skill.Category, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, skill.Name, "", "L", false)
	}
}

func (r *Renderer) writeProject(pdf *fpdf.Fpdf, project Project) {
	name := project.Name
	if project.Link != "" {
		name += " (" + project.Link + ")"
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, name, "", 1, "L", false, 0, "")

	if project.StartDate != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, dateRange(project.StartDate, project.EndDate, ""), "", 1, "L", false, 0, "")
	}
	if project.Description != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, project.Description, "", "L", false)
	}
	if len(project.Technologies) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Technologies: "+strings.Join(project.Technologies, ", "), "", "L", false)
	}
	r.writeBullets(pdf, project.Achievements)
	pdf.Ln(1)
}

func (r *Renderer) writeBullets(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(5, 5, "-", "", 0, "R", false, 0, "")
		pdf.MultiCell(0, 5, item, "", "L", false)
	}
}

// dateRange formats "start - end | location", with "Present" for an open end.
func dateRange(start, end, location string) string {
	if end == "" {
		end = "Present"
	}
	s := start + " - " + end
	if location != "" {
		s += " | " + location
	}
	return s
}

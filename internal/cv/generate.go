package cv

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mwijayanto/autoapply/internal/classify"
	"github.com/mwijayanto/autoapply/internal/llm"
)

// Generator produces one CV artifact per posting that passes classification.
type Generator struct {
	client   llm.Client
	profiles map[classify.Category]*Profile
	renderer *Renderer
	outDir   string
}

// NewGenerator preloads all category templates and prepares the renderer.
func NewGenerator(client llm.Client, outDir, pageSize string) (*Generator, error) {
	profiles, err := PreloadProfiles()
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(pageSize)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:   client,
		profiles: profiles,
		renderer: renderer,
		outDir:   outDir,
	}, nil
}

// Generate renders the CV for the category, tailored to the vacancy text.
// The tailored summary is best-effort: if the oracle call fails the document
// is produced with an empty summary and a warning is logged. Rendering
// failures are fatal.
func (g *Generator) Generate(ctx context.Context, category classify.Category, vacancy string) (*Artifact, error) {
	base, ok := g.profiles[category]
	if !ok {
		return nil, &TemplateError{Category: string(category), Message: "no template for category"}
	}

	// Copy so the tailored summary never leaks into the shared template.
	profile := *base

	summary, err := TailorSummary(ctx, g.client, &profile, vacancy)
	if err != nil {
		log.Printf("Warning: summary tailoring failed, continuing without summary: %v", err)
		summary = ""
	}
	profile.PersonalInfo.Summary = summary

	outPath := filepath.Join(g.outDir, fmt.Sprintf("cv_%s_%s.pdf", category, uuid.NewString()))
	if err := g.renderer.Render(&profile, outPath); err != nil {
		return nil, err
	}

	return &Artifact{Path: outPath, Summary: summary}, nil
}

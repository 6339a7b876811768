package cv

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mwijayanto/autoapply/internal/llm"
	"github.com/mwijayanto/autoapply/internal/prompts"
)

// TailorSummary asks the oracle for a short summary of the profile tailored
// to the vacancy text. Callers treat a failure as soft: the document is still
// produced, just without a summary.
func TailorSummary(ctx context.Context, client llm.Client, profile *Profile, vacancy string) (string, error) {
	profileYAML, err := yaml.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}

	template := prompts.MustGet("classify.json", "tailor-summary")
	prompt := prompts.Format(template, map[string]string{
		"Vacancy": vacancy,
		"CV":      string(profileYAML),
	})

	summary, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("summary oracle call failed: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

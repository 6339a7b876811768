package classify

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwijayanto/autoapply/internal/llm"
	"github.com/mwijayanto/autoapply/internal/prompts"
)

// maxAttempts bounds the oracle calls per posting: one retry, then surface
// the failure.
const maxAttempts = 2

//go:embed result_schema.json
var resultSchema string

// Classifier asks the LLM oracle to categorize a posting. There is no local
// fallback; a persistently failing oracle call is fatal to the posting.
type Classifier struct {
	client llm.Client
}

// New creates a Classifier.
func New(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the category and a short reason for the posting. A
// CategoryNone result is returned without error.
func (c *Classifier) Classify(ctx context.Context, role, description string, salaryMin int64) (*Result, error) {
	prompt := buildPrompt(role, description, salaryMin)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// A cancelled context fails every further call; do not burn the
		// retry on it.
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}

		reply, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
		if err != nil {
			lastErr = err
			continue
		}

		result, err := parseResult(reply)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, &Error{Message: "oracle call failed after retry", Cause: lastErr}
}

// buildPrompt renders the classification prompt with the posting fields.
func buildPrompt(role, description string, salaryMin int64) string {
	template := prompts.MustGet("classify.json", "classify-posting")
	return prompts.Format(template, map[string]string{
		"Role":        role,
		"Description": description,
		"SalaryMin":   strconv.FormatInt(salaryMin, 10),
	})
}

// parseResult validates the oracle reply against the result schema before
// unmarshaling, so malformed replies fail loudly instead of producing a
// half-filled Result.
func parseResult(reply string) (*Result, error) {
	reply = llm.CleanJSONBlock(reply)

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(resultSchema),
		gojsonschema.NewStringLoader(reply),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate oracle reply: %w", err)
	}
	if !validation.Valid() {
		var desc []string
		for _, e := range validation.Errors() {
			desc = append(desc, e.String())
		}
		return nil, fmt.Errorf("oracle reply rejected by schema: %s", strings.Join(desc, "; "))
	}

	var result Result
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal oracle reply: %w", err)
	}
	return &result, nil
}

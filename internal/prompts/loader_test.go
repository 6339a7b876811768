package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("classify.json", "classify-posting")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Role}}")
	assert.Contains(t, prompt, "{{.Description}}")
	assert.Contains(t, prompt, "{{.SalaryMin}}")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("classify.json", "no-such-prompt")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "classify-posting")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("role {{.Role}} pays {{.SalaryMin}}", map[string]string{
		"Role":      "Backend Engineer",
		"SalaryMin": "5000000",
	})
	assert.Equal(t, "role Backend Engineer pays 5000000", result)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("classify.json", "no-such-prompt") })
}

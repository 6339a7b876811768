package cv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwijayanto/autoapply/internal/classify"
	"github.com/mwijayanto/autoapply/internal/llm"
)

type fakeClient struct {
	summary string
	err     error
	calls   int
}

func (c *fakeClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	c.calls++
	return c.summary, c.err
}

func (c *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", fmt.Errorf("not used")
}

func (c *fakeClient) Close() error { return nil }

func TestPreloadProfiles(t *testing.T) {
	profiles, err := PreloadProfiles()
	require.NoError(t, err)

	require.Len(t, profiles, 3)
	for _, category := range []classify.Category{classify.CategoryBackend, classify.CategoryFrontend, classify.CategoryFullstack} {
		profile, ok := profiles[category]
		require.True(t, ok, "missing template for %s", category)
		assert.NotEmpty(t, profile.PersonalInfo.Name)
		assert.NotEmpty(t, profile.Experience)
		assert.NotEmpty(t, profile.Skills)
		assert.Empty(t, profile.PersonalInfo.Summary, "templates ship without a baked-in summary")
	}
}

func TestLoadProfileUnknownCategory(t *testing.T) {
	_, err := LoadProfile(classify.CategoryNone)

	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
}

func TestGenerate(t *testing.T) {
	client := &fakeClient{summary: " A Go backend junior who ships reliable APIs. "}
	gen, err := NewGenerator(client, t.TempDir(), "A4")
	require.NoError(t, err)

	artifact, err := gen.Generate(context.Background(), classify.CategoryBackend, "Backend Engineer vacancy")
	require.NoError(t, err)

	assert.Equal(t, "A Go backend junior who ships reliable APIs.", artifact.Summary)
	assert.Contains(t, filepath.Base(artifact.Path), "cv_backend_")

	info, err := os.Stat(artifact.Path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerateSummaryFailureIsSoft(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("oracle unavailable")}
	gen, err := NewGenerator(client, t.TempDir(), "A4")
	require.NoError(t, err)

	artifact, err := gen.Generate(context.Background(), classify.CategoryFullstack, "vacancy")
	require.NoError(t, err, "summary failure must not abort document generation")

	assert.Empty(t, artifact.Summary)
	_, statErr := os.Stat(artifact.Path)
	assert.NoError(t, statErr)
}

func TestGenerateDoesNotMutateTemplate(t *testing.T) {
	client := &fakeClient{summary: "tailored"}
	gen, err := NewGenerator(client, t.TempDir(), "A4")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), classify.CategoryBackend, "vacancy")
	require.NoError(t, err)

	assert.Empty(t, gen.profiles[classify.CategoryBackend].PersonalInfo.Summary)
}

func TestGenerateUniqueArtifactPaths(t *testing.T) {
	client := &fakeClient{summary: "s"}
	gen, err := NewGenerator(client, t.TempDir(), "A4")
	require.NoError(t, err)

	first, err := gen.Generate(context.Background(), classify.CategoryBackend, "vacancy")
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), classify.CategoryBackend, "vacancy")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestNewRendererPageSizes(t *testing.T) {
	for _, size := range []string{"A4", "a4", "Letter", "letter"} {
		_, err := NewRenderer(size)
		assert.NoError(t, err, "page size %q", size)
	}

	_, err := NewRenderer("tabloid")
	assert.Error(t, err)
}

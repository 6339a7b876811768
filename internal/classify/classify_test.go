package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwijayanto/autoapply/internal/llm"
)

// fakeClient returns scripted replies in order. An entry with err set fails
// that attempt.
type fakeClient struct {
	replies []fakeReply
	calls   int
	prompts []string
}

type fakeReply struct {
	text string
	err  error
}

func (c *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.calls >= len(c.replies) {
		return "", fmt.Errorf("no scripted reply for call %d", c.calls)
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply.text, reply.err
}

func (c *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *fakeClient) Close() error { return nil }

func TestClassify(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"job_category": "backend", "reason": "Golang API work"}`},
	}}

	result, err := New(client).Classify(context.Background(), "Backend Engineer", "Build Golang services", 5000000)
	require.NoError(t, err)

	assert.Equal(t, CategoryBackend, result.Category)
	assert.Equal(t, "Golang API work", result.Reason)
	assert.Equal(t, 1, client.calls)

	// The prompt carries all three posting signals.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Backend Engineer")
	assert.Contains(t, client.prompts[0], "Build Golang services")
	assert.Contains(t, client.prompts[0], "5000000")
}

func TestClassifyNoneIsNotAnError(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"job_category": "none", "reason": "salary below threshold"}`},
	}}

	result, err := New(client).Classify(context.Background(), "Backend Engineer", "desc", 3000000)
	require.NoError(t, err)

	assert.Equal(t, CategoryNone, result.Category)
	assert.Equal(t, "salary below threshold", result.Reason)
}

func TestClassifyRetriesOnceThenSucceeds(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{err: fmt.Errorf("transient oracle failure")},
		{text: `{"job_category": "fullstack", "reason": "frontend and backend duties"}`},
	}}

	result, err := New(client).Classify(context.Background(), "Fullstack Dev", "desc", 0)
	require.NoError(t, err)
	assert.Equal(t, CategoryFullstack, result.Category)
	assert.Equal(t, 2, client.calls)
}

func TestClassifyFailsAfterRetryBudget(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{err: fmt.Errorf("oracle down")},
		{err: fmt.Errorf("oracle down")},
		{text: `{"job_category": "backend", "reason": "never reached"}`},
	}}

	_, err := New(client).Classify(context.Background(), "role", "desc", 0)
	require.Error(t, err)

	var classifyErr *Error
	require.ErrorAs(t, err, &classifyErr)
	assert.Equal(t, 2, client.calls)
}

func TestClassifyRejectsMalformedReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "backend, because it mentions Golang"},
		{name: "unknown category", reply: `{"job_category": "devops", "reason": "x"}`},
		{name: "missing reason", reply: `{"job_category": "backend"}`},
		{name: "empty reason", reply: `{"job_category": "backend", "reason": ""}`},
		{name: "extra fields", reply: `{"job_category": "backend", "reason": "x", "confidence": 0.9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{replies: []fakeReply{{text: tt.reply}, {text: tt.reply}}}
			_, err := New(client).Classify(context.Background(), "role", "desc", 0)
			assert.Error(t, err)
			assert.Equal(t, 2, client.calls, "malformed reply should consume the retry")
		})
	}
}

// cancellingClient cancels the context from inside the first oracle call.
type cancellingClient struct {
	fakeClient
	cancel context.CancelFunc
}

func (c *cancellingClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.cancel()
	return c.fakeClient.GenerateJSON(ctx, prompt, tier)
}

func TestClassifyStopsRetryingWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &cancellingClient{
		fakeClient: fakeClient{replies: []fakeReply{{err: context.Canceled}}},
		cancel:     cancel,
	}

	_, err := New(client).Classify(ctx, "role", "desc", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls, "a dead context must not burn the retry")
}

func TestClassifyCancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeClient{}

	_, err := New(client).Classify(ctx, "role", "desc", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.calls)
}

func TestClassifyAcceptsFencedJSON(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: "```json\n{\"job_category\": \"frontend\", \"reason\": \"React UI work\"}\n```"},
	}}

	result, err := New(client).Classify(context.Background(), "Frontend Dev", "desc", 0)
	require.NoError(t, err)
	assert.Equal(t, CategoryFrontend, result.Category)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryBackend, CategoryFrontend, CategoryFullstack, CategoryNone} {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("devops").Valid())
}

// Package llm provides the client abstraction for the remote language-model
// oracles used for posting classification and CV summary tailoring.
package llm

// ModelTier represents the complexity level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short summarization.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning and structured output.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the lite model
// when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

package assistant

import "time"

// Config holds the session's tunable knobs. Zero values are replaced
// by the defaults below when a Session is created.
type Config struct {
	// ContextCharBudget caps how many characters of document text are
	// placed into a single request. Longer documents are truncated with
	// an explicit marker and results carry Truncated=true.
	ContextCharBudget int

	// MemoryMaxTurns caps how many prior conversation turns are
	// replayed into a follow-up prompt.
	MemoryMaxTurns int

	// MemoryCharBudget caps the approximate character size of the
	// replayed turns. Whichever of the two memory limits binds first
	// wins; recency beats completeness.
	MemoryCharBudget int

	// Timeout bounds each upstream call. On expiry the operation fails
	// with KindUpstreamTimeout and commits no state.
	Timeout time.Duration

	// MaxTokens is the reply token budget per call.
	MaxTokens int

	// Temperature controls model sampling for all operations.
	Temperature float64
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		ContextCharBudget: 24000,
		MemoryMaxTurns:    3,
		MemoryCharBudget:  4000,
		Timeout:           60 * time.Second,
		MaxTokens:         1024,
		Temperature:       0.3,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ContextCharBudget <= 0 {
		c.ContextCharBudget = def.ContextCharBudget
	}
	if c.MemoryMaxTurns <= 0 {
		c.MemoryMaxTurns = def.MemoryMaxTurns
	}
	if c.MemoryCharBudget <= 0 {
		c.MemoryCharBudget = def.MemoryCharBudget
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	return c
}

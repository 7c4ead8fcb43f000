package shared

import "time"

// TokenUsage tracks the tokens one model call consumed, as reported by the
// provider.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// IsZero reports whether no tokens were consumed, meaning the call never
// reached the model.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0
}

// AgentMeta holds operational metadata for one pipeline execution, keyed by
// the agent that ran it.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

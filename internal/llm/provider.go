package llm

import (
	"context"
	"encoding/json"
)

// Provider is the narrow capability interface for the upstream language
// model. The reasoning layer composes a Request, calls Generate, and
// decodes the structured JSON reply. Everything else about the model is
// opaque to callers.
type Provider interface {
	// Generate sends one blocking request to the model and returns its
	// structured reply. When the request carries a Schema, the reply
	// Content is JSON that has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes a single call to the model.
type Request struct {
	// System frames the model's role and the grounding rules it must
	// follow for the whole request.
	System string

	// Messages is the message sequence. The assistant sends a single
	// user message per call; prior conversation turns are folded into
	// that message by the prompt composer, not replayed as separate
	// messages.
	Messages []Message

	// Schema, when set, is the JSON Schema the reply must conform to.
	// Providers use their native structured-output mechanism and the
	// reply is validated before it is returned. When nil, Content is
	// the raw text wrapped as json.RawMessage.
	Schema *Schema

	// MaxTokens bounds the reply length.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0-1.0. Zero value
	// means deterministic.
	Temperature float64
}

// Message is one entry in the request's message sequence.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "document-answer".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's reply.
type Response struct {
	// Content is the reply payload. Validated JSON when the request
	// carried a Schema.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

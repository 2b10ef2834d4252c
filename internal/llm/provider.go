package llm

import (
	"context"
	"encoding/json"
)

// Provider is a language model backend.
type Provider interface {
	// Generate sends req and returns the model output. With a Schema the
	// Content is JSON validated against it; without one the Content is the
	// generated text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema to providers and the validation cache.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Text decodes a free-text response. Structured responses are returned as
// their raw JSON.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finishContent turns provider output into Response content: validated JSON
// when a schema was requested, a JSON string otherwise.
func finishContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		encoded, err := json.Marshal(text)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		return encoded, nil
	}
	content := json.RawMessage(text)
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// resolveModel maps a friendly model name to a provider model id. Unknown
// names pass through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

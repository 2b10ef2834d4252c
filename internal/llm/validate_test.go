package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func explanationSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "An explanation of a citizenship test answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":    map[string]any{"type": "string"},
				"year":       map[string]any{"type": "integer", "minimum": 0},
				"confidence": map[string]any{"type": "string", "enum": []any{"low", "medium", "high"}},
			},
			"required": []any{"summary", "year"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"summary":"The constitution was signed.","year":1849,"confidence":"high"}`)
	err := validateResponse(explanationSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"summary":"Reunification with Sønderjylland.","year":1920}`)
	err := validateResponse(explanationSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"summary":"missing year"}`)
	err := validateResponse(explanationSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"summary":"x","year":"1849"}`)
	err := validateResponse(explanationSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"summary":"x","year":1864,"confidence":"certain"}`)
	err := validateResponse(explanationSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(explanationSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := validateResponse(explanationSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-exam-review",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"exam": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"answers": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"exam", "answers"},
		},
	}

	valid := json.RawMessage(`{"exam":{"name":"2024 summer"},"answers":[1,0,3]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"exam":{"name":"2024 summer"},"answers":["A","B"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestValidateResponse_CachesBySchemaName(t *testing.T) {
	schema := &Schema{
		Name:       "test-cache",
		Definition: map[string]any{"type": "string"},
	}
	if err := validateResponse(schema, json.RawMessage(`"ok"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := compiledSchemas.Load("test-cache"); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
	if err := validateResponse(schema, json.RawMessage(`12`)); err == nil {
		t.Fatal("expected cached schema to reject a number")
	}
}

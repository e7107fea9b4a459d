package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func answerSchema() *Schema {
	return &Schema{
		Name:        "test-answer",
		Description: "A grounded answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer":    map[string]any{"type": "string"},
				"citations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"declined":  map[string]any{"type": "boolean"},
			},
			"required": []any{"answer", "citations", "declined"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"answer":"42","citations":["p. 3"],"declined":false}`)
	if err := validateResponse(answerSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"answer":"42","citations":[]}`)
	err := validateResponse(answerSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_ExtraFieldsIgnored(t *testing.T) {
	raw := json.RawMessage(`{"answer":"42","citations":[],"declined":true,"confidence":"high"}`)
	if err := validateResponse(answerSchema(), raw); err != nil {
		t.Fatalf("extra fields must be accepted, got: %v", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"answer":"42","citations":"p. 3","declined":false}`)
	err := validateResponse(answerSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(answerSchema(), raw)
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
	if err := validateResponse(answerSchema(), raw); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrayOfObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-questions",
		Description: "Generated questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 3,
					"maxItems": 3,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"prompt": map[string]any{"type": "string"},
						},
						"required": []any{"prompt"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}

	valid := json.RawMessage(`{"questions":[{"prompt":"a"},{"prompt":"b"},{"prompt":"c"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	short := json.RawMessage(`{"questions":[{"prompt":"a"}]}`)
	if err := validateResponse(schema, short); err == nil {
		t.Fatal("expected error for wrong question count")
	}
}

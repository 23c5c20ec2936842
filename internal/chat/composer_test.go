package chat

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"

	"nomadcity/internal/models"
)

func TestParseMessagesRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"absent", ""},
		{"null", "null"},
		{"string", `"hello"`},
		{"number", "42"},
		{"object", `{"role":"user","content":"hi"}`},
		{"entry missing role", `[{"content":"hi"}]`},
		{"entry missing content", `[{"role":"user"}]`},
		{"bad role", `[{"role":"robot","content":"hi"}]`},
		{"numeric content", `[{"role":"user","content":7}]`},
		{"null content", `[{"role":"user","content":null}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMessages(json.RawMessage(tc.raw))
			if err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Reason != ErrInvalidMessages {
				t.Fatalf("unexpected reason: %q", verr.Reason)
			}
		})
	}
}

func TestParseMessagesAcceptsValidHistory(t *testing.T) {
	raw := json.RawMessage(`[
		{"role":"user","content":"What cities fit a researcher?"},
		{"role":"assistant","content":"Zuzalu could be a match."},
		{"role":"user","content":"Tell me more."}
	]`)
	msgs, err := ParseMessages(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Fatalf("roles not preserved: %+v", msgs)
	}
	if msgs[2].Content != "Tell me more." {
		t.Fatalf("content not preserved: %q", msgs[2].Content)
	}
}

func TestParseMessagesAcceptsEmptyArray(t *testing.T) {
	msgs, err := ParseMessages(json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d", len(msgs))
	}
}

func TestComposePrependsSystemPrompt(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
	}
	composed := Compose(history)
	if len(composed) != len(history)+1 {
		t.Fatalf("expected %d messages, got %d", len(history)+1, len(composed))
	}
	if composed[0].Role != schema.System || composed[0].Content != SystemPrompt {
		t.Fatalf("first message is not the domain prompt")
	}
	if composed[1].Content != "first" || composed[2].Content != "second" {
		t.Fatalf("caller order not preserved")
	}
	if composed[1].Role != schema.User || composed[2].Role != schema.Assistant {
		t.Fatalf("roles not mapped: %v %v", composed[1].Role, composed[2].Role)
	}
}

func TestComposePassesCallerSystemMessagesThrough(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleSystem, Content: "caller supplied"},
		{Role: models.RoleUser, Content: "hi"},
	}
	composed := Compose(history)
	if len(composed) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(composed))
	}
	if composed[1].Role != schema.System || composed[1].Content != "caller supplied" {
		t.Fatalf("caller system message was altered: %+v", composed[1])
	}
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	history := []models.ChatMessage{{Role: models.RoleUser, Content: "untouched"}}
	Compose(history)
	if history[0].Role != models.RoleUser || history[0].Content != "untouched" {
		t.Fatalf("input history mutated: %+v", history[0])
	}
}

package chat

import (
	"bytes"
	"encoding/json"

	"github.com/cloudwego/eino/schema"

	"nomadcity/internal/models"
)

// ParseMessages checks the shape of the raw "messages" field: it must be a
// JSON array of records with a recognized role and a string content. Anything
// else (absent, null, string, number, object) fails validation before any
// provider call is made.
func ParseMessages(raw json.RawMessage) ([]models.ChatMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, invalidMessages()
	}
	if trimmed[0] != '[' {
		return nil, invalidMessages()
	}

	var entries []struct {
		Role    json.RawMessage `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, invalidMessages()
	}

	messages := make([]models.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		var msg models.ChatMessage
		if err := json.Unmarshal(entry.Role, &msg.Role); err != nil || !msg.Role.Valid() {
			return nil, invalidMessages()
		}
		// Unmarshal treats null as a no-op for strings, so require the
		// raw value to actually be a JSON string.
		content := bytes.TrimSpace(entry.Content)
		if len(content) == 0 || content[0] != '"' {
			return nil, invalidMessages()
		}
		if err := json.Unmarshal(content, &msg.Content); err != nil {
			return nil, invalidMessages()
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Compose builds the outbound provider sequence: the fixed domain prompt as
// the leading system message, then the caller's messages in their original
// order. Caller-supplied system entries are passed through untouched; the
// composer does not scan for them.
func Compose(history []models.ChatMessage) []*schema.Message {
	composed := make([]*schema.Message, 0, len(history)+1)
	composed = append(composed, &schema.Message{
		Role:    schema.System,
		Content: SystemPrompt,
	})
	for _, msg := range history {
		composed = append(composed, &schema.Message{
			Role:    convertRole(msg.Role),
			Content: msg.Content,
		})
	}
	return composed
}

func convertRole(role models.Role) schema.RoleType {
	switch role {
	case models.RoleAssistant:
		return schema.Assistant
	case models.RoleSystem:
		return schema.System
	default:
		return schema.User
	}
}

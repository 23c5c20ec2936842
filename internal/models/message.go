package models

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatMessage is a single entry in a caller-supplied conversation history.
// Chat requests are never persisted; the struct only travels from the HTTP
// body to the model provider.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

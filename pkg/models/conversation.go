package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole represents the role of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ValidChatRoles contains all valid chat role values.
var ValidChatRoles = []ChatRole{
	ChatRoleUser,
	ChatRoleAssistant,
	ChatRoleSystem,
}

// IsValidChatRole checks if the given role is valid.
func IsValidChatRole(r ChatRole) bool {
	for _, v := range ValidChatRoles {
		if v == r {
			return true
		}
	}
	return false
}

// ConversationTurn is one row of the append-only conversation log.
// Metadata carries the tool name and result for assistant turns that
// followed a tool invocation.
type ConversationTurn struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Role      ChatRole       `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HistoryMessage is an incoming conversation history item from the client.
// System-role items are stripped before reaching the oracle.
type HistoryMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

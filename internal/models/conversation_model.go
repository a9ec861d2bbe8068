package models

import "time"

// Message roles, matching the chat-completion wire format.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Message is a single turn within a conversation. Messages are append-only,
// except that the final assistant message may be rewritten in place while a
// streamed reply is still arriving.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	Role      string    `json:"role" firestore:"role"`
	Content   string    `json:"content" firestore:"content"`
	Model     string    `json:"model,omitempty" firestore:"model,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// Conversation represents a chat history document at
// users/{uid}/conversations/{id}. It is owned by exactly one user.
type Conversation struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Messages    []Message `json:"messages" firestore:"messages"`
	Model       string    `json:"model,omitempty" firestore:"model,omitempty"`
	AssistantID string    `json:"assistantId,omitempty" firestore:"assistantId,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

package models

import "time"

// Assistant is an admin-managed assistant template at assistants/{id}.
// Conversations reference it by ID; its system prompt is prepended to the
// message list when the conversation uses it.
type Assistant struct {
	ID           string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	Category     string    `json:"category" firestore:"category"`
	Icon         string    `json:"icon" firestore:"icon"`
	SystemPrompt string    `json:"systemPrompt" firestore:"systemPrompt"`
	Model        string    `json:"model" firestore:"model"`
	IsActive     bool      `json:"isActive" firestore:"isActive"`
	UsageCount   int64     `json:"usageCount" firestore:"usageCount"`
	CreatedBy    string    `json:"createdBy,omitempty" firestore:"createdBy,omitempty"`
	UpdatedBy    string    `json:"updatedBy,omitempty" firestore:"updatedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

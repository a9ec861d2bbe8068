package models

// ChatMessage is the role+content pair accepted by the chat endpoints.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatCompletionRequest is the request body for POST /chat/completions.
type ChatCompletionRequest struct {
	Messages       []ChatMessage `json:"messages" binding:"required"`
	Model          string        `json:"model,omitempty"`
	ConversationID string        `json:"conversationId,omitempty"`
	AssistantID    string        `json:"assistantId,omitempty"`
}

// StreamChatRequest is the request body for the plain streaming endpoint.
// The identity token travels in the body because the endpoint is reached
// outside the authenticated transport.
type StreamChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required"`
	Model    string        `json:"model,omitempty"`
	IDToken  string        `json:"idToken" binding:"required"`
}

// CreateConversationRequest creates an empty conversation.
type CreateConversationRequest struct {
	Title       string `json:"title,omitempty"`
	Model       string `json:"model,omitempty"`
	AssistantID string `json:"assistantId,omitempty"`
}

// GenerateImageRequest is the request body for POST /images/generate.
type GenerateImageRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	Size    string `json:"size,omitempty"`    // 1024x1024 | 1792x1024 | 1024x1792
	Quality string `json:"quality,omitempty"` // standard | hd
	Style   string `json:"style,omitempty"`   // vivid | natural
}

// TextToSpeechRequest is the request body for POST /speech/synthesize.
type TextToSpeechRequest struct {
	Text  string  `json:"text" binding:"required"`
	Voice string  `json:"voice,omitempty"` // alloy, echo, fable, onyx, nova, shimmer
	Speed float64 `json:"speed,omitempty"`
}

// SpeechToTextRequest is the request body for POST /speech/transcribe.
// Audio arrives base64-encoded the way the browser recorder produces it.
type SpeechToTextRequest struct {
	AudioBase64 string `json:"audioBase64" binding:"required"`
	Language    string `json:"language,omitempty"`
	Format      string `json:"format,omitempty"`
}

// UpdateSettingsRequest replaces the caller's settings blob.
type UpdateSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" binding:"required"`
}

// UserListFilter narrows the admin user listing.
type UserListFilter struct {
	Plan   string `json:"plan,omitempty" form:"plan"`
	Status string `json:"status,omitempty" form:"status"`
}

// UpdateUserRequest carries an admin edit of a user record. Fields outside
// the allowlist are dropped silently, not rejected.
type UpdateUserRequest struct {
	Updates map[string]interface{} `json:"updates" binding:"required"`
}

// CancelSubscriptionRequest cancels a subscription and downgrades the user.
type CancelSubscriptionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SaveAssistantRequest creates or updates an assistant template.
// AssistantID empty means create.
type SaveAssistantRequest struct {
	AssistantID  string `json:"assistantId,omitempty"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Icon         string `json:"icon,omitempty"`
	SystemPrompt string `json:"systemPrompt" binding:"required"`
	Model        string `json:"model,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

// UpdateSystemSettingsRequest merges into the config/system document.
type UpdateSystemSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" binding:"required"`
}

package chatclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

const (
	titleMaxLen       = 50
	defaultStoreTitle = "New Conversation"
	sinkBuffer        = 16
)

// Errors returned by the store.
var (
	ErrEmptyMessage        = errors.New("message content must not be empty")
	ErrNoConversation      = errors.New("no conversation selected")
	ErrNothingToRegen      = errors.New("no assistant response to regenerate")
	ErrUnknownConversation = errors.New("unknown conversation")
)

// Persistence saves and restores the store's state between sessions.
type Persistence interface {
	Load() (*State, error)
	Save(state *State) error
}

// State is the persisted snapshot of the store.
type State struct {
	Conversations []*models.Conversation `json:"conversations"`
	SelectedID    string                 `json:"selectedId"`
	Model         string                 `json:"model"`
}

// Store holds the client-side conversation state: the conversation list,
// the current selection and the active model. All mutations go through it
// and every mutation is mirrored to the persistence layer.
type Store struct {
	mu            sync.Mutex
	conversations []*models.Conversation
	selectedID    string
	model         string
	sending       bool

	client  llm.ChatClient
	persist Persistence
	logger  *zap.Logger
}

// NewStore restores persisted state and returns the store. A load failure
// starts from an empty state rather than failing the client.
func NewStore(client llm.ChatClient, persist Persistence, logger *zap.Logger) *Store {
	s := &Store{
		client:  client,
		persist: persist,
		logger:  logger,
		model:   llm.DefaultModelID,
	}
	state, err := persist.Load()
	if err != nil {
		logger.Warn("failed to restore conversation state", zap.Error(err))
		return s
	}
	if state != nil {
		s.conversations = state.Conversations
		s.selectedID = state.SelectedID
		if _, ok := llm.Resolve(state.Model); ok {
			s.model = state.Model
		}
	}
	return s
}

// save must be called with the mutex held.
func (s *Store) save() {
	state := &State{
		Conversations: s.conversations,
		SelectedID:    s.selectedID,
		Model:         s.model,
	}
	if err := s.persist.Save(state); err != nil {
		s.logger.Warn("failed to persist conversation state", zap.Error(err))
	}
}

// NewConversation creates an empty conversation, prepends it to the list
// and selects it.
func (s *Store) NewConversation() *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &models.Conversation{
		ID:        uuid.NewString(),
		Title:     defaultStoreTitle,
		Model:     s.model,
		Messages:  []models.Message{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.conversations = append([]*models.Conversation{conv}, s.conversations...)
	s.selectedID = conv.ID
	s.save()
	return conv
}

// Select switches the active conversation.
func (s *Store) Select(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(conversationID) == nil {
		return ErrUnknownConversation
	}
	s.selectedID = conversationID
	s.save()
	return nil
}

// Delete removes a conversation. Deleting the selected one moves the
// selection to the most recent remaining conversation.
func (s *Store) Delete(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, conv := range s.conversations {
		if conv.ID == conversationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownConversation
	}
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)
	if s.selectedID == conversationID {
		s.selectedID = ""
		if len(s.conversations) > 0 {
			s.selectedID = s.conversations[0].ID
		}
	}
	s.save()
	return nil
}

// SetModel switches the active model. Unknown IDs fall back to the
// default model.
func (s *Store) SetModel(modelID string) {
	model, _ := llm.Resolve(modelID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model.ID
	s.save()
}

// Model returns the active model ID.
func (s *Store) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Conversations returns a snapshot of the conversation list, most recent
// first.
func (s *Store) Conversations() []*models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Selected returns the active conversation, or nil when none is selected.
func (s *Store) Selected() *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.selectedID)
}

func (s *Store) findLocked(conversationID string) *models.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == conversationID {
			return conv
		}
	}
	return nil
}

// deriveTitle names a conversation after its first message, truncated to
// a displayable length.
func deriveTitle(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	return string(runes[:titleMaxLen]) + "..."
}

// SendMessage appends the user message and streams the assistant reply
// into a placeholder message. While a send is in flight further sends are
// no-ops. On failure the placeholder is rolled back; the user message
// stays so the exchange can be retried.
func (s *Store) SendMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil
	}
	s.sending = true

	conv := s.findLocked(s.selectedID)
	if conv == nil {
		s.mu.Unlock()
		s.NewConversation()
		s.mu.Lock()
		conv = s.findLocked(s.selectedID)
	}

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.MessageRoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
	conv.Messages = append(conv.Messages, userMsg)
	firstMessage := len(conv.Messages) == 1
	if firstMessage {
		conv.Title = deriveTitle(content)
	}
	s.save()
	s.mu.Unlock()

	err := s.streamReply(ctx, conv)
	if err == nil && firstMessage {
		s.generateTitle(ctx, conv, content)
	}
	return err
}

// generateTitle asks the model for a short conversation title. On any
// failure the truncated first message already in place stays.
func (s *Store) generateTitle(ctx context.Context, conv *models.Conversation, firstMessage string) {
	prompt := []models.ChatMessage{{
		Role: models.MessageRoleUser,
		Content: "Generate a concise title (at most six words, no quotes) for a conversation " +
			"that starts with this message:\n\n" + firstMessage,
	}}
	result, err := s.client.Complete(ctx, s.Model(), prompt)
	if err != nil || result == nil || strings.TrimSpace(result.Content) == "" {
		return
	}
	s.mu.Lock()
	conv.Title = deriveTitle(result.Content)
	s.save()
	s.mu.Unlock()
}

// RegenerateLastResponse discards the last assistant message and streams
// a fresh reply to the same prompt.
func (s *Store) RegenerateLastResponse(ctx context.Context) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil
	}
	conv := s.findLocked(s.selectedID)
	if conv == nil {
		s.mu.Unlock()
		return ErrNoConversation
	}
	n := len(conv.Messages)
	if n == 0 || conv.Messages[n-1].Role != models.MessageRoleAssistant {
		s.mu.Unlock()
		return ErrNothingToRegen
	}
	s.sending = true
	conv.Messages = conv.Messages[:n-1]
	s.save()
	s.mu.Unlock()

	return s.streamReply(ctx, conv)
}

// streamReply appends a placeholder assistant message and fills it from
// the stream. The caller must have set the in-flight flag; it is cleared
// here on every path.
func (s *Store) streamReply(ctx context.Context, conv *models.Conversation) error {
	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	s.mu.Lock()
	prompt := make([]models.ChatMessage, len(conv.Messages))
	for i, m := range conv.Messages {
		prompt[i] = models.ChatMessage{Role: m.Role, Content: m.Content}
	}
	placeholder := models.Message{
		ID:        uuid.NewString(),
		Role:      models.MessageRoleAssistant,
		Model:     s.model,
		Timestamp: time.Now(),
	}
	conv.Messages = append(conv.Messages, placeholder)
	model := s.model
	s.save()
	s.mu.Unlock()

	sink := llm.NewSink(sinkBuffer)
	if err := s.client.Stream(ctx, model, prompt, sink); err != nil {
		s.rollbackPlaceholder(conv, placeholder.ID)
		return err
	}

	for chunk := range sink.Chunks() {
		if chunk.Content == "" {
			continue
		}
		s.appendToMessage(conv, placeholder.ID, chunk.Content)
	}
	if err := sink.Err(); err != nil {
		s.rollbackPlaceholder(conv, placeholder.ID)
		return err
	}

	s.mu.Lock()
	conv.UpdatedAt = time.Now()
	s.save()
	s.mu.Unlock()
	return nil
}

func (s *Store) appendToMessage(conv *models.Conversation, messageID, delta string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range conv.Messages {
		if conv.Messages[i].ID == messageID {
			conv.Messages[i].Content += delta
			return
		}
	}
}

// rollbackPlaceholder removes the failed assistant message if it is
// still empty; partial streamed content stays. The user message that
// triggered it is kept either way.
func (s *Store) rollbackPlaceholder(conv *models.Conversation, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range conv.Messages {
		if conv.Messages[i].ID == messageID {
			if conv.Messages[i].Content == "" {
				conv.Messages = append(conv.Messages[:i], conv.Messages[i+1:]...)
			}
			break
		}
	}
	s.save()
}

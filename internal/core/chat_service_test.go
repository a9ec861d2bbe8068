package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

func newChatFixture() (*fakeChatClient, *fakeUserRepo, *fakeConvRepo, *fakeAssistantRepo, *fakeRecorder, ChatService) {
	client := &fakeChatClient{reply: &llm.ChatResult{Content: "hello there", Usage: llm.Usage{TotalTokens: 12}}}
	userRepo := newFakeUserRepo(&models.User{ID: "u1"})
	convRepo := &fakeConvRepo{}
	assistantRepo := &fakeAssistantRepo{assistants: map[string]*models.Assistant{
		"helper": {ID: "helper", Name: "Helper", SystemPrompt: "You are terse."},
	}}
	recorder := &fakeRecorder{}
	svc := NewChatService(client, userRepo, convRepo, assistantRepo, recorder, zap.NewNop())
	return client, userRepo, convRepo, assistantRepo, recorder, svc
}

func TestCompleteReturnsReplyAndAccountsUsage(t *testing.T) {
	_, userRepo, _, _, recorder, svc := newChatFixture()

	reply, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", reply.Content)
	assert.Equal(t, llm.DefaultModelID, reply.Model)
	assert.Equal(t, []string{"messagesUsed"}, userRepo.increments)
	assert.Equal(t, 1, recorder.messages)
}

func TestCompleteRejectsEmptyMessages(t *testing.T) {
	client, _, _, _, _, svc := newChatFixture()

	_, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, client.calls)
}

func TestCompletePersistsExchangeWhenConversationGiven(t *testing.T) {
	_, _, convRepo, _, _, svc := newChatFixture()

	_, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{
		Messages:       []models.ChatMessage{{Role: "user", Content: "hi"}},
		ConversationID: "c1",
	})

	require.NoError(t, err)
	require.Len(t, convRepo.appended, 2)
	assert.Equal(t, models.MessageRoleUser, convRepo.appended[0].Role)
	assert.Equal(t, "hi", convRepo.appended[0].Content)
	assert.Equal(t, models.MessageRoleAssistant, convRepo.appended[1].Role)
	assert.Equal(t, "hello there", convRepo.appended[1].Content)
}

func TestCompleteSurvivesPersistenceFailure(t *testing.T) {
	_, userRepo, convRepo, _, _, svc := newChatFixture()
	convRepo.appendErr = errors.New("firestore down")
	userRepo.incrementErr = errors.New("firestore down")

	reply, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{
		Messages:       []models.ChatMessage{{Role: "user", Content: "hi"}},
		ConversationID: "c1",
	})

	require.NoError(t, err, "persistence failures must not fail the request")
	assert.Equal(t, "hello there", reply.Content)
}

func TestCompleteInjectsAssistantSystemPrompt(t *testing.T) {
	client, _, _, assistantRepo, _, svc := newChatFixture()

	_, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{
		Messages:    []models.ChatMessage{{Role: "user", Content: "hi"}},
		AssistantID: "helper",
	})

	require.NoError(t, err)
	require.Len(t, client.lastSent, 2)
	assert.Equal(t, models.MessageRoleSystem, client.lastSent[0].Role)
	assert.Equal(t, "You are terse.", client.lastSent[0].Content)
	assert.Equal(t, 1, assistantRepo.usageBumps)
}

func TestCompleteUnknownAssistant(t *testing.T) {
	client, _, _, _, _, svc := newChatFixture()

	_, err := svc.Complete(context.Background(), "u1", &models.ChatCompletionRequest{
		Messages:    []models.ChatMessage{{Role: "user", Content: "hi"}},
		AssistantID: "missing",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, client.calls)
}

func TestStreamRejectsEmptyMessages(t *testing.T) {
	_, _, _, _, _, svc := newChatFixture()

	sink := llm.NewSink(1)
	err := svc.Stream(context.Background(), &models.StreamChatRequest{}, sink)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

package core

import (
	"context"
	"sync"
	"time"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

// Fakes embed the repository interfaces so only the methods a test
// exercises need real bodies; calling anything else panics loudly.

type fakeUserRepo struct {
	db.UserRepository

	mu         sync.Mutex
	users      map[string]*models.User
	created    []*models.User
	updates    []map[string]interface{}
	deleted    []string
	increments []string
	listLimits []int

	countTotal   int
	getErr       error
	applyErr     error
	incrementErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) ApplyUpdates(_ context.Context, userID string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	if _, ok := f.users[userID]; !ok {
		return db.ErrNotFound
	}
	f.updates = append(f.updates, updates)
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return db.ErrNotFound
	}
	delete(f.users, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeUserRepo) IncrementUsage(_ context.Context, userID, field string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments = append(f.increments, field)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, limit int, _ string, _ models.UserListFilter) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listLimits = append(f.listLimits, limit)
	return nil, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return f.countTotal, nil
}

type fakeConvRepo struct {
	db.ConversationRepository

	mu        sync.Mutex
	appended  []models.Message
	appendErr error
}

func (f *fakeConvRepo) AppendMessages(_ context.Context, _, _ string, messages ...models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, messages...)
	return nil
}

type fakeAssistantRepo struct {
	db.AssistantRepository

	mu         sync.Mutex
	assistants map[string]*models.Assistant
	usageBumps int
}

func (f *fakeAssistantRepo) GetByID(_ context.Context, id string) (*models.Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assistants[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAssistantRepo) IncrementUsage(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usageBumps++
	return nil
}

type fakeImageRepo struct {
	db.ImageRepository

	mu     sync.Mutex
	stored []*models.GeneratedImage
}

func (f *fakeImageRepo) Create(_ context.Context, _ string, image *models.GeneratedImage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, image)
	return "img-1", nil
}

type fakeSubRepo struct {
	db.SubscriptionRepository

	mu      sync.Mutex
	subs    map[string]*models.Subscription
	updates []map[string]interface{}
}

func (f *fakeSubRepo) GetByID(_ context.Context, id string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSubRepo) ApplyUpdates(_ context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; !ok {
		return db.ErrNotFound
	}
	f.updates = append(f.updates, updates)
	return nil
}

type fakeAnalyticsRepo struct {
	db.AnalyticsRepository

	mu         sync.Mutex
	rangeStart time.Time
	rangeEnd   time.Time
	daily      []models.DailyStats
	bumps      []string
}

func (f *fakeAnalyticsRepo) Range(_ context.Context, start, end time.Time) ([]models.DailyStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeStart, f.rangeEnd = start, end
	return f.daily, nil
}

func (f *fakeAnalyticsRepo) IncrementDaily(_ context.Context, _ time.Time, field string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bumps = append(f.bumps, field)
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AdminLog
}

func (f *fakeAudit) Record(_ context.Context, action, adminUID, targetType, targetID string, changes map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, models.AdminLog{
		Action:     action,
		AdminID:    adminUID,
		TargetType: targetType,
		TargetID:   targetID,
		Changes:    changes,
	})
}

type fakeRecorder struct {
	mu       sync.Mutex
	messages int
	images   int
}

func (f *fakeRecorder) RecordMessage(context.Context, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages++
}

func (f *fakeRecorder) RecordImage(context.Context, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images++
}

type fakeChatClient struct {
	mu       sync.Mutex
	calls    int
	lastSent []models.ChatMessage
	reply    *llm.ChatResult
	err      error
}

func (f *fakeChatClient) Complete(_ context.Context, _ string, messages []models.ChatMessage) (*llm.ChatResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSent = messages
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeChatClient) Stream(_ context.Context, _ string, messages []models.ChatMessage, sink *llm.Sink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSent = messages
	if f.err != nil {
		return f.err
	}
	go sink.Close()
	return nil
}

type fakeImageClient struct {
	mu     sync.Mutex
	calls  int
	result *llm.ImageResult
	err    error
}

func (f *fakeImageClient) Generate(context.Context, llm.ImageRequest) (*llm.ImageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAuthDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeAuthDeleter) DeleteUser(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartai-backend-go/internal/models"
)

func TestGetOrCreateProfileCreatesFreeTierDefault(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, zap.NewNop())

	user, err := svc.GetOrCreateProfile(context.Background(), Identity{
		UID:         "u1",
		Email:       "u1@example.com",
		DisplayName: "User One",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.PlanFree, user.Plan)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.EqualValues(t, models.FreeMessageQuota, user.MessageQuota)
	assert.EqualValues(t, models.FreeImageQuota, user.ImageQuota)
	assert.Zero(t, user.MessagesUsed)
	require.Len(t, userRepo.created, 1)
}

func TestGetOrCreateProfileReturnsExisting(t *testing.T) {
	existing := &models.User{ID: "u1", Plan: models.PlanPro, MessageQuota: 5000}
	userRepo := newFakeUserRepo(existing)
	svc := NewUserService(userRepo, zap.NewNop())

	user, err := svc.GetOrCreateProfile(context.Background(), Identity{UID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, user.Plan)
	assert.Empty(t, userRepo.created, "existing profile must not be recreated")
}

func TestUpdateSettingsMergesKeys(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{
		ID:       "u1",
		Settings: map[string]interface{}{"theme": "light", "lang": "en"},
	})
	svc := NewUserService(userRepo, zap.NewNop())

	user, err := svc.UpdateSettings(context.Background(), "u1", map[string]interface{}{"theme": "dark"})

	require.NoError(t, err)
	assert.Equal(t, "dark", user.Settings["theme"])
	assert.Equal(t, "en", user.Settings["lang"])
	require.Len(t, userRepo.updates, 1)
}

func TestUpdateSettingsUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), zap.NewNop())

	_, err := svc.UpdateSettings(context.Background(), "ghost", map[string]interface{}{"theme": "dark"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

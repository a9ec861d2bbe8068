package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartai-backend-go/internal/models"
)

func newAdminFixture(users ...*models.User) (*fakeUserRepo, *fakeAnalyticsRepo, *fakeAudit, *fakeAuthDeleter, AdminService) {
	userRepo := newFakeUserRepo(users...)
	analyticsRepo := &fakeAnalyticsRepo{}
	audit := &fakeAudit{}
	deleter := &fakeAuthDeleter{}
	svc := NewAdminService(userRepo, nil, nil, nil, analyticsRepo, nil, deleter, audit, zap.NewNop())
	return userRepo, analyticsRepo, audit, deleter, svc
}

func adminUser() *models.User {
	return &models.User{ID: "admin1", Role: models.RoleAdmin}
}

func TestUpdateUserAppliesOnlyAllowlistedFields(t *testing.T) {
	userRepo, _, audit, _, svc := newAdminFixture(adminUser(), &models.User{ID: "u1", Plan: models.PlanFree})

	_, err := svc.UpdateUser(context.Background(), "admin1", "u1", map[string]interface{}{
		"plan":         models.PlanPro,
		"messageQuota": 1000,
		"email":        "evil@example.com",
		"role":         models.RoleAdmin,
		"settings":     map[string]interface{}{"theme": "dark"},
	})

	require.NoError(t, err)
	require.Len(t, userRepo.updates, 1)
	applied := userRepo.updates[0]
	assert.Equal(t, models.PlanPro, applied["plan"])
	assert.Equal(t, 1000, applied["messageQuota"])
	assert.Equal(t, models.RoleAdmin, applied["role"])
	assert.Equal(t, "admin1", applied["updatedBy"])
	assert.NotContains(t, applied, "email")
	assert.NotContains(t, applied, "settings")

	require.Len(t, audit.entries, 1, "exactly one audit entry per update")
	assert.Equal(t, models.ActionUpdateUser, audit.entries[0].Action)
	assert.Equal(t, "u1", audit.entries[0].TargetID)
}

func TestUpdateUserRejectsNonAdmin(t *testing.T) {
	userRepo, _, audit, _, svc := newAdminFixture(
		&models.User{ID: "mod1", Role: models.RoleModerator},
		&models.User{ID: "u1"},
	)

	_, err := svc.UpdateUser(context.Background(), "mod1", "u1", map[string]interface{}{"plan": models.PlanPro})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, userRepo.updates)
	assert.Empty(t, audit.entries)
}

func TestUpdateUserNoAllowlistedFields(t *testing.T) {
	_, _, audit, _, svc := newAdminFixture(adminUser(), &models.User{ID: "u1"})

	_, err := svc.UpdateUser(context.Background(), "admin1", "u1", map[string]interface{}{"email": "x@y.z"})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, audit.entries)
}

func TestListUsersDefaultLimit(t *testing.T) {
	userRepo, _, _, _, svc := newAdminFixture(adminUser())

	_, err := svc.ListUsers(context.Background(), "admin1", 0, "", models.UserListFilter{})

	require.NoError(t, err)
	assert.Equal(t, []int{20}, userRepo.listLimits)
}

func TestUpdateUserUnknownTarget(t *testing.T) {
	userRepo, _, audit, _, svc := newAdminFixture(adminUser())

	_, err := svc.UpdateUser(context.Background(), "admin1", "ghost", map[string]interface{}{"plan": models.PlanPro})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, userRepo.updates)
	assert.Empty(t, audit.entries)
}

func TestCancelSubscriptionDowngradesOwner(t *testing.T) {
	userRepo := newFakeUserRepo(adminUser(), &models.User{ID: "u7", Plan: models.PlanPro})
	subRepo := &fakeSubRepo{subs: map[string]*models.Subscription{
		"sub-9": {ID: "sub-9", UserID: "u7", Plan: models.PlanPro, Status: models.SubscriptionActive},
	}}
	audit := &fakeAudit{}
	svc := NewAdminService(userRepo, subRepo, nil, nil, nil, nil, nil, audit, zap.NewNop())

	require.NoError(t, svc.CancelSubscription(context.Background(), "admin1", "sub-9", "chargeback"))

	require.Len(t, subRepo.updates, 1)
	assert.Equal(t, models.SubscriptionCancelled, subRepo.updates[0]["status"])
	assert.Equal(t, "chargeback", subRepo.updates[0]["cancelReason"])
	assert.Equal(t, "admin1", subRepo.updates[0]["cancelledBy"])

	require.Len(t, userRepo.updates, 1)
	downgrade := userRepo.updates[0]
	assert.Equal(t, models.PlanFree, downgrade["plan"])
	assert.Equal(t, int64(models.FreeMessageQuota), downgrade["messageQuota"])
	assert.Equal(t, int64(models.FreeImageQuota), downgrade["imageQuota"])

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.ActionCancelSubscription, audit.entries[0].Action)
	assert.Equal(t, "sub-9", audit.entries[0].TargetID)
	assert.Equal(t, "u7", audit.entries[0].Changes["userId"])
}

func TestCancelSubscriptionUnknownID(t *testing.T) {
	userRepo := newFakeUserRepo(adminUser())
	subRepo := &fakeSubRepo{subs: map[string]*models.Subscription{}}
	audit := &fakeAudit{}
	svc := NewAdminService(userRepo, subRepo, nil, nil, nil, nil, nil, audit, zap.NewNop())

	err := svc.CancelSubscription(context.Background(), "admin1", "sub-404", "typo")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, userRepo.updates)
	assert.Empty(t, audit.entries)
}

func TestDeleteUserCascadesToAuth(t *testing.T) {
	userRepo, _, audit, deleter, svc := newAdminFixture(adminUser(), &models.User{ID: "u1"})

	require.NoError(t, svc.DeleteUser(context.Background(), "admin1", "u1"))

	assert.Equal(t, []string{"u1"}, userRepo.deleted)
	assert.Equal(t, []string{"u1"}, deleter.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.ActionDeleteUser, audit.entries[0].Action)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	userRepo, _, _, _, svc := newAdminFixture(adminUser())

	err := svc.DeleteUser(context.Background(), "admin1", "admin1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, userRepo.deleted)
}

func TestAnalyticsThirtyDayWindow(t *testing.T) {
	userRepo, analyticsRepo, _, _, svc := newAdminFixture(adminUser())
	// The report sums the window's daily active-user counts; the global
	// user count must not leak into it.
	userRepo.countTotal = 9999
	analyticsRepo.daily = []models.DailyStats{
		{Messages: 10, Images: 1, ActiveUsers: 3},
		{Messages: 20, Images: 2, ActiveUsers: 5},
		{Messages: 5, Images: 0, ActiveUsers: 2},
	}

	report, err := svc.Analytics(context.Background(), "admin1", "30d")

	require.NoError(t, err)
	assert.Equal(t, "30d", report.DateRange)
	assert.Equal(t, int64(35), report.Totals.Messages)
	assert.Equal(t, int64(3), report.Totals.Images)
	assert.Equal(t, int64(10), report.Totals.Users)

	// 30 calendar days inclusive.
	window := analyticsRepo.rangeEnd.Sub(analyticsRepo.rangeStart)
	assert.Equal(t, 29*24*time.Hour, window)
}

func TestAnalyticsDefaultsToSevenDays(t *testing.T) {
	_, analyticsRepo, _, _, svc := newAdminFixture(adminUser())

	report, err := svc.Analytics(context.Background(), "admin1", "")

	require.NoError(t, err)
	assert.Equal(t, "7d", report.DateRange)
	assert.Equal(t, 6*24*time.Hour, analyticsRepo.rangeEnd.Sub(analyticsRepo.rangeStart))
}

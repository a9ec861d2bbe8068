package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

// Monthly plan prices used for the dashboard revenue estimate.
const (
	proMonthlyPrice      = 19.99
	businessMonthlyPrice = 49.99
)

const (
	defaultUserListLimit  = 20
	defaultLogListLimit   = 100
	activeUserWindow      = 30 * 24 * time.Hour
	signupSeriesDays      = 7
	defaultAnalyticsRange = "7d"
)

// AuthUserDeleter removes an account from the identity provider. Satisfied
// by the Firebase Auth client.
type AuthUserDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Fields an admin is allowed to change on a user document. Anything else
// in the request is dropped silently.
var userUpdateAllowlist = map[string]bool{
	"plan":         true,
	"status":       true,
	"role":         true,
	"messageQuota": true,
	"imageQuota":   true,
}

type adminService struct {
	userRepo      db.UserRepository
	subRepo       db.SubscriptionRepository
	assistantRepo db.AssistantRepository
	systemLogRepo db.SystemLogRepository
	analyticsRepo db.AnalyticsRepository
	settingsRepo  db.SettingsRepository
	authDeleter   AuthUserDeleter
	audit         AuditService
	logger        *zap.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo db.UserRepository,
	subRepo db.SubscriptionRepository,
	assistantRepo db.AssistantRepository,
	systemLogRepo db.SystemLogRepository,
	analyticsRepo db.AnalyticsRepository,
	settingsRepo db.SettingsRepository,
	authDeleter AuthUserDeleter,
	audit AuditService,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		subRepo:       subRepo,
		assistantRepo: assistantRepo,
		systemLogRepo: systemLogRepo,
		analyticsRepo: analyticsRepo,
		settingsRepo:  settingsRepo,
		authDeleter:   authDeleter,
		audit:         audit,
		logger:        logger,
	}
}

// requireAdmin re-reads the caller's document on every call so revoked
// admins lose access immediately, not at token expiry.
func (s *adminService) requireAdmin(ctx context.Context, adminUID string) (*models.User, error) {
	admin, err := s.userRepo.GetByID(ctx, adminUID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to verify admin role: %w", err)
	}
	if !admin.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return admin, nil
}

func (s *adminService) DashboardStats(ctx context.Context, adminUID string) (*models.DashboardStats, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	active, err := s.userRepo.CountActiveSince(ctx, time.Now().Add(-activeUserWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	pro, err := s.userRepo.CountByPlan(ctx, models.PlanPro)
	if err != nil {
		return nil, fmt.Errorf("failed to count pro users: %w", err)
	}
	business, err := s.userRepo.CountByPlan(ctx, models.PlanBusiness)
	if err != nil {
		return nil, fmt.Errorf("failed to count business users: %w", err)
	}

	stats := &models.DashboardStats{
		TotalUsers:     total,
		ActiveUsers:    active,
		ProUsers:       pro,
		BusinessUsers:  business,
		MonthlyRevenue: float64(pro)*proMonthlyPrice + float64(business)*businessMonthlyPrice,
		DailySignups:   []models.DailySignup{},
	}

	recent, err := s.userRepo.ListRecent(ctx, 500)
	if err != nil {
		// The signup series is decoration; keep the dashboard usable.
		s.logger.Warn("failed to load recent signups", zap.Error(err))
		return stats, nil
	}
	stats.DailySignups = bucketSignups(recent, time.Now(), signupSeriesDays)
	return stats, nil
}

// bucketSignups counts per-day signups over the trailing window, oldest
// day first. Days without signups appear with a zero count.
func bucketSignups(users []*models.User, now time.Time, days int) []models.DailySignup {
	counts := make(map[string]int)
	for _, u := range users {
		counts[u.CreatedAt.UTC().Format("2006-01-02")]++
	}
	series := make([]models.DailySignup, 0, days)
	start := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		series = append(series, models.DailySignup{Date: day, Count: counts[day.Format("2006-01-02")]})
	}
	return series
}

func (s *adminService) ListUsers(ctx context.Context, adminUID string, limit int, startAfterID string, filter models.UserListFilter) ([]*models.User, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultUserListLimit
	}
	users, err := s.userRepo.List(ctx, limit, startAfterID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *adminService) UpdateUser(ctx context.Context, adminUID, targetUID string, updates map[string]interface{}) (*models.User, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}

	allowed := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		if userUpdateAllowlist[field] {
			allowed[field] = value
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrInvalidArgument)
	}
	allowed["updatedBy"] = adminUID

	if err := s.userRepo.ApplyUpdates(ctx, targetUID, allowed); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.audit.Record(ctx, models.ActionUpdateUser, adminUID, "user", targetUID, allowed)

	user, err := s.userRepo.GetByID(ctx, targetUID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the Firestore document, then the auth account.
func (s *adminService) DeleteUser(ctx context.Context, adminUID, targetUID string) error {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return err
	}
	if adminUID == targetUID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidArgument)
	}

	if err := s.userRepo.Delete(ctx, targetUID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user document: %w", err)
	}
	if err := s.authDeleter.DeleteUser(ctx, targetUID); err != nil {
		// The profile is already gone; surface the partial failure.
		return fmt.Errorf("failed to delete auth account: %w", err)
	}
	s.audit.Record(ctx, models.ActionDeleteUser, adminUID, "user", targetUID, nil)
	return nil
}

func (s *adminService) ListSubscriptions(ctx context.Context, adminUID string, limit int, startAfterID, status string) ([]*models.Subscription, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultUserListLimit
	}
	subs, err := s.subRepo.List(ctx, limit, startAfterID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	for _, sub := range subs {
		user, err := s.userRepo.GetByID(ctx, sub.UserID)
		if err != nil {
			continue
		}
		sub.UserEmail = user.Email
		sub.UserName = user.DisplayName
	}
	return subs, nil
}

// CancelSubscription marks the subscription cancelled and downgrades the
// owning user back to the free tier.
func (s *adminService) CancelSubscription(ctx context.Context, adminUID, subscriptionID, reason string) error {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return err
	}

	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: subscription '%s'", ErrNotFound, subscriptionID)
		}
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	subUpdates := map[string]interface{}{
		"status":       models.SubscriptionCancelled,
		"cancelledAt":  time.Now(),
		"cancelReason": reason,
		"cancelledBy":  adminUID,
	}
	if err := s.subRepo.ApplyUpdates(ctx, subscriptionID, subUpdates); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	downgrade := map[string]interface{}{
		"plan":         models.PlanFree,
		"messageQuota": int64(models.FreeMessageQuota),
		"imageQuota":   int64(models.FreeImageQuota),
		"updatedBy":    adminUID,
	}
	if err := s.userRepo.ApplyUpdates(ctx, sub.UserID, downgrade); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to downgrade user: %w", err)
	}
	s.audit.Record(ctx, models.ActionCancelSubscription, adminUID, "subscription", subscriptionID, map[string]interface{}{
		"reason": reason,
		"userId": sub.UserID,
	})
	return nil
}

func (s *adminService) ListAssistants(ctx context.Context, adminUID string) ([]*models.Assistant, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	assistants, err := s.assistantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	return assistants, nil
}

func (s *adminService) SaveAssistant(ctx context.Context, adminUID string, req *models.SaveAssistantRequest) (*models.Assistant, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if req.Name == "" || req.SystemPrompt == "" {
		return nil, fmt.Errorf("%w: name and systemPrompt are required", ErrInvalidArgument)
	}

	model, _ := llm.Resolve(req.Model)
	changes := map[string]interface{}{"name": req.Name, "model": model.ID}

	if req.AssistantID == "" {
		assistant := &models.Assistant{
			Name:         req.Name,
			Description:  req.Description,
			Category:     req.Category,
			Icon:         req.Icon,
			SystemPrompt: req.SystemPrompt,
			Model:        model.ID,
			IsActive:     true,
			CreatedBy:    adminUID,
		}
		if req.IsActive != nil {
			assistant.IsActive = *req.IsActive
		}
		id, err := s.assistantRepo.Create(ctx, assistant)
		if err != nil {
			return nil, fmt.Errorf("failed to create assistant: %w", err)
		}
		assistant.ID = id
		s.audit.Record(ctx, models.ActionSaveAssistant, adminUID, "assistant", id, changes)
		return assistant, nil
	}

	assistant, err := s.assistantRepo.GetByID(ctx, req.AssistantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: assistant '%s'", ErrNotFound, req.AssistantID)
		}
		return nil, fmt.Errorf("failed to load assistant: %w", err)
	}
	assistant.Name = req.Name
	assistant.Description = req.Description
	assistant.Category = req.Category
	assistant.Icon = req.Icon
	assistant.SystemPrompt = req.SystemPrompt
	assistant.Model = model.ID
	assistant.UpdatedBy = adminUID
	if req.IsActive != nil {
		assistant.IsActive = *req.IsActive
	}
	if err := s.assistantRepo.Update(ctx, assistant); err != nil {
		return nil, fmt.Errorf("failed to update assistant: %w", err)
	}
	s.audit.Record(ctx, models.ActionSaveAssistant, adminUID, "assistant", assistant.ID, changes)
	return assistant, nil
}

func (s *adminService) DeleteAssistant(ctx context.Context, adminUID, assistantID string) error {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return err
	}
	if err := s.assistantRepo.Delete(ctx, assistantID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: assistant '%s'", ErrNotFound, assistantID)
		}
		return fmt.Errorf("failed to delete assistant: %w", err)
	}
	s.audit.Record(ctx, models.ActionDeleteAssistant, adminUID, "assistant", assistantID, nil)
	return nil
}

func (s *adminService) SystemLogs(ctx context.Context, adminUID string, limit int, level, service string) ([]*models.SystemLog, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLogListLimit
	}
	logs, err := s.systemLogRepo.List(ctx, limit, level, service)
	if err != nil {
		return nil, fmt.Errorf("failed to list system logs: %w", err)
	}
	return logs, nil
}

// analyticsWindow translates a range label into a day count.
func analyticsWindow(dateRange string) int {
	switch dateRange {
	case "30d":
		return 30
	case "90d":
		return 90
	case "1y":
		return 365
	default:
		return 7
	}
}

func (s *adminService) Analytics(ctx context.Context, adminUID, dateRange string) (*models.AnalyticsReport, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if dateRange == "" {
		dateRange = defaultAnalyticsRange
	}

	days := analyticsWindow(dateRange)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(days - 1))

	daily, err := s.analyticsRepo.Range(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics range: %w", err)
	}

	report := &models.AnalyticsReport{
		DailyStats: daily,
		DateRange:  dateRange,
	}
	for _, day := range daily {
		report.Totals.Messages += day.Messages
		report.Totals.Images += day.Images
		report.Totals.Users += day.ActiveUsers
	}
	return report, nil
}

func (s *adminService) GetSystemSettings(ctx context.Context, adminUID string) (map[string]interface{}, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load system settings: %w", err)
	}
	return settings, nil
}

func (s *adminService) UpdateSystemSettings(ctx context.Context, adminUID string, settings map[string]interface{}) (map[string]interface{}, error) {
	if _, err := s.requireAdmin(ctx, adminUID); err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("%w: settings must not be empty", ErrInvalidArgument)
	}
	if err := s.settingsRepo.Merge(ctx, settings, adminUID); err != nil {
		return nil, fmt.Errorf("failed to update system settings: %w", err)
	}
	s.audit.Record(ctx, models.ActionUpdateSystemSettings, adminUID, "settings", "system", settings)

	merged, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload system settings: %w", err)
	}
	return merged, nil
}

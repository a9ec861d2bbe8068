package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smartai-backend-go/internal/models"
)

const (
	adminLogsCollection  = "adminLogs"
	systemLogsCollection = "systemLogs"
)

// firestoreAdminLogRepository implements AdminLogRepository.
type firestoreAdminLogRepository struct {
	client *firestore.Client
}

// NewFirestoreAdminLogRepository creates a new instance of firestoreAdminLogRepository.
func NewFirestoreAdminLogRepository(client *firestore.Client) AdminLogRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AdminLogRepository.")
	}
	return &firestoreAdminLogRepository{client: client}
}

// Create appends one audit entry. The timestamp is populated server-side.
func (r *firestoreAdminLogRepository) Create(ctx context.Context, entry models.AdminLog) error {
	_, _, err := r.client.Collection(adminLogsCollection).Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append admin log entry: %w", err)
	}
	return nil
}

// firestoreSystemLogRepository implements SystemLogRepository.
type firestoreSystemLogRepository struct {
	client *firestore.Client
}

// NewFirestoreSystemLogRepository creates a new instance of firestoreSystemLogRepository.
func NewFirestoreSystemLogRepository(client *firestore.Client) SystemLogRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SystemLogRepository.")
	}
	return &firestoreSystemLogRepository{client: client}
}

// List returns log records newest first, optionally filtered by level and
// service name.
func (r *firestoreSystemLogRepository) List(ctx context.Context, limit int, level, service string) ([]*models.SystemLog, error) {
	q := r.client.Collection(systemLogsCollection).Query.OrderBy("timestamp", firestore.Desc)
	if level != "" {
		q = q.Where("level", "==", level)
	}
	if service != "" {
		q = q.Where("service", "==", service)
	}
	q = q.Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var logs []*models.SystemLog
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate system logs: %w", err)
		}
		var entry models.SystemLog
		if err := docSnap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode system log '%s': %w", docSnap.Ref.ID, err)
		}
		entry.ID = docSnap.Ref.ID
		logs = append(logs, &entry)
	}
	return logs, nil
}

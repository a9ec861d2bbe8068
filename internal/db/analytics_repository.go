package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smartai-backend-go/internal/models"
)

const analyticsCollection = "analytics"

// analyticsDateFormat is the document ID format for the per-day counters.
const analyticsDateFormat = "2006-01-02"

// firestoreAnalyticsRepository implements AnalyticsRepository against the
// analytics/{date} documents.
type firestoreAnalyticsRepository struct {
	client *firestore.Client
}

// NewFirestoreAnalyticsRepository creates a new instance of firestoreAnalyticsRepository.
func NewFirestoreAnalyticsRepository(client *firestore.Client) AnalyticsRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AnalyticsRepository.")
	}
	return &firestoreAnalyticsRepository{client: client}
}

// Range returns the daily stats documents whose date falls within
// [start, end], oldest first.
func (r *firestoreAnalyticsRepository) Range(ctx context.Context, start, end time.Time) ([]models.DailyStats, error) {
	iter := r.client.Collection(analyticsCollection).
		Where("date", ">=", start).
		Where("date", "<=", end).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var days []models.DailyStats
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate analytics documents: %w", err)
		}
		var day models.DailyStats
		if err := docSnap.DataTo(&day); err != nil {
			return nil, fmt.Errorf("failed to decode analytics document '%s': %w", docSnap.Ref.ID, err)
		}
		days = append(days, day)
	}
	return days, nil
}

// IncrementDaily bumps one counter on the day's document, creating it with
// its date field on first touch. Set with MergeAll keeps the increment
// atomic while remaining upsert-safe.
func (r *firestoreAnalyticsRepository) IncrementDaily(ctx context.Context, day time.Time, field string, delta int64) error {
	day = day.UTC().Truncate(24 * time.Hour)
	docID := day.Format(analyticsDateFormat)
	_, err := r.client.Collection(analyticsCollection).Doc(docID).Set(ctx, map[string]interface{}{
		"date": day,
		field:  firestore.Increment(delta),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to increment '%s' on analytics/%s: %w", field, docID, err)
	}
	return nil
}

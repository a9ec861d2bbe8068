package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smartai-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document to Firestore. The user.ID (Firebase Auth
// UID) is used as the Firestore document ID. CreatedAt/UpdatedAt are
// populated server-side via the serverTimestamp tags.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s' already exists: %w", user.ID, err)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document from Firestore by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID

	return &user, nil
}

// ApplyUpdates applies an already-allowlisted field map to the user
// document. Update (not a merge-Set) so a missing document fails with
// NotFound instead of being created. updatedAt is refreshed on every call.
func (r *firestoreUserRepository) ApplyUpdates(ctx context.Context, userID string, updates map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty for ApplyUpdates operation")
	}
	fields := make([]firestore.Update, 0, len(updates)+1)
	for k, v := range updates {
		fields = append(fields, firestore.Update{Path: k, Value: v})
	}
	fields = append(fields, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, fields)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to apply updates to user '%s': %w", userID, err)
	}
	return nil
}

// Delete removes the user document. The Firebase Auth record cascade is the
// caller's responsibility (see the admin service).
func (r *firestoreUserRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user with ID '%s': %w", userID, err)
	}
	return nil
}

// IncrementUsage bumps a numeric counter field with Firestore's atomic
// increment primitive rather than a read-modify-write.
func (r *firestoreUserRepository) IncrementUsage(ctx context.Context, userID, field string, delta int64) error {
	if userID == "" {
		return errors.New("userID cannot be empty for IncrementUsage operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to increment '%s' for user '%s': %w", field, userID, err)
	}
	return nil
}

// List returns users ordered by creation time (newest first), optionally
// filtered by plan/status and paginated with a startAfter document ID.
func (r *firestoreUserRepository) List(ctx context.Context, limit int, startAfterID string, filter models.UserListFilter) ([]*models.User, error) {
	q := r.client.Collection(usersCollection).Query.OrderBy("createdAt", firestore.Desc)
	if filter.Plan != "" {
		q = q.Where("plan", "==", filter.Plan)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	}
	if startAfterID != "" {
		startSnap, err := r.client.Collection(usersCollection).Doc(startAfterID).Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve startAfter document '%s': %w", startAfterID, err)
		}
		createdAt, err := startSnap.DataAt("createdAt")
		if err != nil {
			return nil, fmt.Errorf("startAfter document '%s' has no createdAt: %w", startAfterID, err)
		}
		q = q.StartAfter(createdAt)
	}
	q = q.Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		var user models.User
		if err := docSnap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user '%s': %w", docSnap.Ref.ID, err)
		}
		user.ID = docSnap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

// Count returns the total number of user documents.
func (r *firestoreUserRepository) Count(ctx context.Context) (int, error) {
	return r.countQuery(ctx, r.client.Collection(usersCollection).Query)
}

// CountActiveSince counts users whose last login is at or after the given time.
func (r *firestoreUserRepository) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	q := r.client.Collection(usersCollection).Query.Where("lastLoginAt", ">=", since)
	return r.countQuery(ctx, q)
}

// CountByPlan counts users on the given plan tier.
func (r *firestoreUserRepository) CountByPlan(ctx context.Context, plan string) (int, error) {
	q := r.client.Collection(usersCollection).Query.Where("plan", "==", plan)
	return r.countQuery(ctx, q)
}

// ListRecent returns the newest user documents, used for the signup series
// on the admin dashboard.
func (r *firestoreUserRepository) ListRecent(ctx context.Context, limit int) ([]*models.User, error) {
	return r.List(ctx, limit, "", models.UserListFilter{})
}

func (r *firestoreUserRepository) countQuery(ctx context.Context, q firestore.Query) (int, error) {
	// Select() fetches document references without field data.
	iter := q.Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count documents: %w", err)
		}
		count++
	}
	return count, nil
}

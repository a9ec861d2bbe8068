package models

import "time"

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Subscription represents a billing subscription document at
// subscriptions/{id}. Payment processing itself is delegated; this record
// only mirrors the state the admin console needs.
type Subscription struct {
	ID           string    `json:"id" firestore:"-"`
	UserID       string    `json:"userId" firestore:"userId"`
	Plan         string    `json:"plan" firestore:"plan"`
	Status       string    `json:"status" firestore:"status"`
	CancelledAt  time.Time `json:"cancelledAt,omitempty" firestore:"cancelledAt,omitempty"`
	CancelReason string    `json:"cancelReason,omitempty" firestore:"cancelReason,omitempty"`
	CancelledBy  string    `json:"cancelledBy,omitempty" firestore:"cancelledBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`

	// Enrichment from the owning user document; never written to Firestore.
	UserEmail string `json:"userEmail,omitempty" firestore:"-"`
	UserName  string `json:"userName,omitempty" firestore:"-"`
}

package models

import "time"

// User roles stored on the user document.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Plan tiers and the free-tier quota defaults applied on first sign-in
// and when a subscription is cancelled.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanBusiness   = "business"
	PlanEnterprise = "enterprise"

	FreeMessageQuota = 100
	FreeImageQuota   = 10
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User represents a user profile document at users/{uid}.
// The document ID is the Firebase Auth UID.
type User struct {
	ID              string                 `json:"id" firestore:"-"`
	Email           string                 `json:"email" firestore:"email"`
	DisplayName     string                 `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL        string                 `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Role            string                 `json:"role" firestore:"role"`
	Plan            string                 `json:"plan" firestore:"plan"`
	Status          string                 `json:"status,omitempty" firestore:"status,omitempty"` // e.g. "active", "suspended"
	MessageQuota    int64                  `json:"messageQuota" firestore:"messageQuota"`
	MessagesUsed    int64                  `json:"messagesUsed" firestore:"messagesUsed"`
	ImageQuota      int64                  `json:"imageQuota" firestore:"imageQuota"`
	ImagesGenerated int64                  `json:"imagesGenerated" firestore:"imagesGenerated"`
	Settings        map[string]interface{} `json:"settings,omitempty" firestore:"settings,omitempty"`
	LastLoginAt     time.Time              `json:"lastLoginAt,omitempty" firestore:"lastLoginAt,omitempty"`
	UpdatedBy       string                 `json:"updatedBy,omitempty" firestore:"updatedBy,omitempty"`
	CreatedAt       time.Time              `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time              `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// IsAdmin reports whether the stored role grants admin access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

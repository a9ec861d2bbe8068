package models

import "time"

// Admin actions recorded in the audit trail.
const (
	ActionUpdateUser           = "updateUser"
	ActionDeleteUser           = "deleteUser"
	ActionCancelSubscription   = "cancelSubscription"
	ActionSaveAssistant        = "saveAssistant"
	ActionDeleteAssistant      = "deleteAssistant"
	ActionUpdateSystemSettings = "updateSystemSettings"
)

// AdminLog is an append-only audit record at adminLogs/{id}. Every mutating
// admin operation writes exactly one entry.
type AdminLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Action     string                 `json:"action" firestore:"action"`
	AdminID    string                 `json:"adminId" firestore:"adminId"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"`
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Changes    map[string]interface{} `json:"changes,omitempty" firestore:"changes,omitempty"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

package models

import "time"

// SystemLog is a read-only application log record at systemLogs/{id},
// written by the hosting runtime and surfaced in the admin console.
type SystemLog struct {
	ID        string                 `json:"id" firestore:"-"`
	Level     string                 `json:"level" firestore:"level"` // e.g. "info", "warn", "error"
	Service   string                 `json:"service" firestore:"service"`
	Message   string                 `json:"message" firestore:"message"`
	Details   map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp" firestore:"timestamp"`
}

package models

import "time"

// ActivityLog is the denormalized activity feed. Report saves append an
// entry here in the same request; the feed is never derived from the
// report rows themselves.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Action      string    `json:"action" gorm:"not null"` // report_create, report_update
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	ActionReportCreate = "report_create"
	ActionReportUpdate = "report_update"
)

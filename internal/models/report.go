package models

import (
	"time"

	"github.com/lib/pq"
)

// DailyReport is the persisted flat record: one row per user, date and
// report index. ReportIndex disambiguates multiple reports a user files
// on the same day; it is unique within (user_id, report_date).
type DailyReport struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_date_index"`
	ReportDate    string         `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_user_date_index"` // YYYY-MM-DD
	ReportIndex   int            `json:"report_index" gorm:"not null;default:0;uniqueIndex:idx_user_date_index"`
	Completed     pq.StringArray `json:"completed" gorm:"type:text[]"`
	InProgress    pq.StringArray `json:"in_progress" gorm:"type:text[]"`
	Issues        pq.StringArray `json:"issues" gorm:"type:text[]"`
	Tomorrow      pq.StringArray `json:"tomorrow" gorm:"type:text[]"`
	Project       string         `json:"project"`
	ProjectID     *uint          `json:"project_id"`
	TaskIDs       pq.Int64Array  `json:"task_ids" gorm:"type:bigint[]"`
	Status        string         `json:"status" gorm:"default:'completed'"` // completed, pending, overdue
	UserFeedback  *string        `json:"user_feedback"`
	AdminFeedback *string        `json:"admin_feedback"`
	AdminReviewed bool           `json:"admin_reviewed" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ReportStatus string

const (
	ReportCompleted ReportStatus = "completed"
	ReportPending   ReportStatus = "pending"
	ReportOverdue   ReportStatus = "overdue"
)

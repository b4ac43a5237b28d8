package common

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ExportJob records one generated export bundle
type ExportJob struct {
	ID                  string     `gorm:"primaryKey;type:text" json:"id"`
	Scope               string     `gorm:"not null" json:"scope"`  // all, quality
	Status              string     `gorm:"not null" json:"status"` // processing, completed, failed
	Files               string     `gorm:"type:text" json:"files,omitempty"`
	MembersTotal        int        `gorm:"default:0" json:"members_total"`
	VendorsTotal        int        `gorm:"default:0" json:"vendors_total"`
	IssuesTotal         int        `gorm:"default:0" json:"issues_total"`
	SourceLastUpdatedAt *time.Time `json:"source_last_updated_at,omitempty"`
	ClientIP            string     `json:"client_ip,omitempty"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// ApiMetric tracks API performance metrics
type ApiMetric struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RequestID     string    `gorm:"index" json:"request_id"`
	Endpoint      string    `gorm:"not null" json:"endpoint"`
	Method        string    `gorm:"not null" json:"method"`
	StatusCode    int       `gorm:"not null" json:"status_code"`
	DurationMs    int       `gorm:"not null" json:"duration_ms"`
	RowsProcessed int       `gorm:"default:0" json:"rows_processed"`
	Errors        string    `gorm:"type:text" json:"errors,omitempty"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
}

func (ExportJob) TableName() string { return "export_jobs" }
func (ApiMetric) TableName() string { return "api_metrics" }

// AutoMigrateJobs creates job tracking tables
func AutoMigrateJobs(db *gorm.DB) error {
	return db.AutoMigrate(&ExportJob{}, &ApiMetric{})
}

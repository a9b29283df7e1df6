package models

import (
	"time"

	"gorm.io/gorm"
)

// Report is the one-time completion record filed against a task. A task has
// at most one report; a task without a report counts as pending in analytics.
type Report struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	TaskID       uint64   `gorm:"not null;uniqueIndex" json:"task_id"`
	AuthorID     uint64   `gorm:"not null" json:"author_id"`
	Comment      string   `gorm:"type:text" json:"comment"`
	Challenges   string   `gorm:"type:text" json:"challenges"`
	Materials    []string `gorm:"type:text;serializer:json" json:"materials"`
	EvidenceURLs []string `gorm:"type:text;serializer:json" json:"evidence_urls"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task      Task             `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author    User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Attendees []ReportAttendee `gorm:"foreignKey:ReportID" json:"attendees,omitempty"`
}

// HasEvidence reports whether at least one evidence URL is attached.
func (r *Report) HasEvidence() bool {
	return r != nil && len(r.EvidenceURLs) > 0
}

// ReportAttendee links a report to a participant profile.
type ReportAttendee struct {
	ReportID  uint64         `gorm:"primarykey" json:"report_id"`
	UserID    uint64         `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Report Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

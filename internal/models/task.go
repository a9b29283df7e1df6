package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusActive      TaskStatus = "active"
	TaskStatusOngoing     TaskStatus = "ongoing"
	TaskStatusUpcoming    TaskStatus = "upcoming"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusCancelled   TaskStatus = "cancelled"
	TaskStatusPostponed   TaskStatus = "postponed"
	TaskStatusRescheduled TaskStatus = "rescheduled"
	TaskStatusInactive    TaskStatus = "inactive"
)

// Task is a unit of planned work within an activity, owned by a team. Cost
// fields are integer currency units (RWF).
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ActivityID  uint64     `gorm:"not null;index" json:"activity_id"`
	TeamID      uint64     `gorm:"not null;index" json:"team_id"`
	CreatorID   uint64     `gorm:"not null" json:"creator_id"`

	EstimatedCost           int64 `gorm:"not null;default:0" json:"estimated_cost"`
	ActualCost              int64 `gorm:"not null;default:0" json:"actual_cost"`
	ExpectedParticipants    int   `gorm:"not null;default:0" json:"expected_participants"`
	ActualParticipants      int   `gorm:"not null;default:0" json:"actual_participants"`
	ExpectedFinancialImpact int64 `gorm:"not null;default:0" json:"expected_financial_impact"`
	ActualFinancialImpact   int64 `gorm:"not null;default:0" json:"actual_financial_impact"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Activity Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	Team     Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Creator  User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Report   *Report  `gorm:"foreignKey:TaskID" json:"report,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityStatus string

const (
	ActivityStatusUpcoming  ActivityStatus = "upcoming"
	ActivityStatusOngoing   ActivityStatus = "ongoing"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

// Activity is a scheduled community undertaking containing tasks, scoped to a
// village.
type Activity struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Date        time.Time      `gorm:"not null;index" json:"date"`
	Status      ActivityStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	VillageID   uint64         `gorm:"not null;index" json:"village_id"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Village *Location `gorm:"foreignKey:VillageID" json:"village,omitempty"`
	Creator User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Tasks   []Task    `gorm:"foreignKey:ActivityID" json:"tasks,omitempty"`
}

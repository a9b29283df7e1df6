package models

import "time"

type LocationLevel string

const (
	LevelProvince LocationLevel = "province"
	LevelDistrict LocationLevel = "district"
	LevelSector   LocationLevel = "sector"
	LevelCell     LocationLevel = "cell"
	LevelVillage  LocationLevel = "village"
)

// Location is one node of the administrative hierarchy
// (province > district > sector > cell > village).
type Location struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Level     LocationLevel `gorm:"type:varchar(20);not null;index" json:"level"`
	ParentID  *uint64       `gorm:"index" json:"parent_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Parent   *Location  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Location `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

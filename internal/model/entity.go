package model

import "time"

// RoomSnapshot is the archived latest code per room (GORM).
// One row per room, overwritten on every accepted write; ClosedAt is stamped
// when the last member leaves.
type RoomSnapshot struct {
	RoomID    string     `gorm:"size:128;primaryKey"`
	Code      string     `gorm:"type:text;not null"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	ClosedAt  *time.Time `gorm:"column:closed_at"`
}

func (RoomSnapshot) TableName() string { return "room_snapshots" }

package models

import "time"

// BoardUser is a board-scoped membership record. It is upserted the first
// time an authenticated identity writes to a board and never removed.
type BoardUser struct {
	ID          uint64    `gorm:"primarykey" json:"-"`
	BoardID     uint64    `gorm:"not null;uniqueIndex:idx_board_user" json:"boardId"`
	Board       Board     `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_board_user" json:"userId"`
	DisplayName string    `gorm:"size:120" json:"displayName"`
	PhotoURL    string    `gorm:"size:500" json:"photoURL"`
	TimeCreated time.Time `gorm:"autoCreateTime" json:"timeCreated"`
	TimeUpdated time.Time `gorm:"autoUpdateTime" json:"timeUpdated"`
}

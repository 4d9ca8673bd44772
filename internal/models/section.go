package models

import "time"

// Section is a fixed-order column within a board. Sections are immutable
// after creation; there is no update operation for them.
type Section struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	BoardID     uint64    `gorm:"not null;index" json:"boardId"`
	Board       Board     `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:40;not null" json:"title"`
	Order       int       `gorm:"not null;default:0" json:"order"`
	TimeCreated time.Time `gorm:"autoCreateTime" json:"timeCreated"`
	TimeUpdated time.Time `gorm:"autoUpdateTime" json:"timeUpdated"`
}

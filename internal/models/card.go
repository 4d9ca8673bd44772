package models

import "time"

// Card is a user-authored text note. A card belongs to exactly one section
// at a time; moving it retargets SectionID without touching content,
// creation time or author.
type Card struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	BoardID     uint64    `gorm:"not null;index" json:"boardId"`
	Board       Board     `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
	SectionID   uint64    `gorm:"not null;index" json:"sectionId"`
	Section     Section   `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
	UserID      string    `gorm:"size:64" json:"userId"`
	Content     string    `gorm:"size:1000;not null" json:"content"`
	Vote        int       `gorm:"not null;default:0" json:"vote"`
	TimeCreated time.Time `gorm:"autoCreateTime" json:"timeCreated"`
	TimeUpdated time.Time `gorm:"autoUpdateTime" json:"timeUpdated"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// BoardConfig holds the per-board feature switches.
type BoardConfig struct {
	ShowCardCreator     bool `json:"showCardCreator"`
	ShowTimestamp       bool `json:"showTimestamp"`
	RemoveCardOnlyOwner bool `json:"removeCardOnlyOwner"`
	MarkStaleMinutes    int  `json:"markStaleMinutes"`
}

// Label is a board-level named color tag. Cards reference labels through
// inline #key tokens in their content.
type Label struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// Board represents the database model
type Board struct {
	ID           uint64                          `gorm:"primarykey" json:"id"`
	Slug         string                          `gorm:"size:16;uniqueIndex;not null" json:"slug"`
	Title        string                          `gorm:"size:60;not null" json:"title"`
	Description  *string                         `gorm:"size:160" json:"description"`
	OwnerID      string                          `gorm:"size:64;index" json:"ownerId"`
	SectionCount int                             `gorm:"not null;default:0" json:"sectionCount"`
	Config       datatypes.JSONType[BoardConfig] `json:"config"`
	Labels       datatypes.JSONType[[]Label]     `json:"labels"`
	TimeCreated  time.Time                       `gorm:"autoCreateTime" json:"timeCreated"`
	TimeUpdated  time.Time                       `gorm:"autoUpdateTime" json:"timeUpdated"`
}

// DefaultBoardConfig returns the configuration applied to new boards.
// markStaleMinutes=0 means stale marking is off.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		ShowCardCreator:     true,
		ShowTimestamp:       true,
		RemoveCardOnlyOwner: false,
		MarkStaleMinutes:    0,
	}
}

// DefaultLabels returns the label set applied to new boards. Boards start
// without labels; owners add them from the settings screen.
func DefaultLabels() []Label {
	return []Label{}
}

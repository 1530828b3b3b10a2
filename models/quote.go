package models

import "time"

// Quote is a short citation with an optional original author, distinct from
// CreatedBy which records who posted it.
type Quote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Author    string    `gorm:"size:128" json:"author,omitempty"`
	CreatedBy string    `gorm:"size:64;index" json:"created_by,omitempty"`
	Category  string    `gorm:"size:64" json:"category,omitempty"`
	Tags      []string  `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

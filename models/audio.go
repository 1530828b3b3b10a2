package models

import "time"

// Audio mirrors Video minus likes and tags.
type Audio struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   string    `gorm:"size:64;index" json:"created_by,omitempty"`
	Source      string    `gorm:"size:16;not null" json:"source"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

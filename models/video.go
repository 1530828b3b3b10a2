package models

import "time"

// Video source values.
const (
	SourceUpload = "upload"
	SourceURL    = "url"
)

// Video references either an uploaded file or an external URL.
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   string    `gorm:"size:64;index" json:"created_by,omitempty"`
	Source      string    `gorm:"size:16;not null" json:"source"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	Tags        []string  `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

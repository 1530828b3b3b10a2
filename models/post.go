package models

import "time"

// Post is a long-form article. Author is the creator's username and doubles
// as the ownership field for delete authorization.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:64;index" json:"author,omitempty"`
	ImageURL  string    `gorm:"size:1024" json:"image_url,omitempty"`
	Tags      []string  `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Comment attaches to any content kind through the (content_type, content_id)
// discriminator pair. There is deliberately no foreign key: the reference is a
// tagged union across the content tables.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContentType string    `gorm:"size:16;not null;index:idx_comments_content" json:"content_type"`
	ContentID   uint      `gorm:"not null;index:idx_comments_content" json:"content_id"`
	Author      string    `gorm:"size:64" json:"author,omitempty"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

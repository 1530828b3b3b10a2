package models

import "time"

// GalleryImage is one entry of a gallery's ordered image list.
type GalleryImage struct {
	URL string `json:"url"`
}

// Gallery is an ordered collection of images. A gallery must hold at least
// one image, which the store checks at creation time.
type Gallery struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   string         `gorm:"size:64;index" json:"created_by,omitempty"`
	Images      []GalleryImage `gorm:"serializer:json;type:text" json:"images"`
	Tags        []string       `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	Likes       int            `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

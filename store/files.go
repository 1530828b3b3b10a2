package store

import (
	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
)

// FileStore records uploaded assets so they can be enumerated.
type FileStore struct {
	db *gorm.DB
}

// NewFileStore creates a FileStore on the given connection.
func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{db: db}
}

// Record persists metadata for a stored file.
func (s *FileStore) Record(f *models.StoredFile) error {
	return s.db.Create(f).Error
}

// List returns stored files newest first.
func (s *FileStore) List() ([]models.StoredFile, error) {
	var files []models.StoredFile
	err := s.db.Order("created_at DESC, id DESC").Find(&files).Error
	return files, err
}

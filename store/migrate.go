package store

import (
	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
)

// AutoMigrate creates the full schema from the model definitions. Production
// startup uses the versioned migration runner in config; this entry point
// exists for tests running against substitute databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Quote{},
		&models.Gallery{},
		&models.Video{},
		&models.Audio{},
		&models.Comment{},
		&models.StoredFile{},
	)
}

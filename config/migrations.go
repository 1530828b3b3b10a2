package config

import (
	"fmt"

	"gorm.io/gorm"
)

// migration is one versioned schema step. Steps run in order inside a
// transaction each; applied versions are recorded in schema_migrations and
// never re-run.
type migration struct {
	Version int
	Name    string
	Stmts   []string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create_users",
		Stmts: []string{
			"CREATE TABLE IF NOT EXISTS `users` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`username` VARCHAR(64) NOT NULL," +
				"`password_hash` VARCHAR(255) NOT NULL," +
				"`role` VARCHAR(16) NOT NULL DEFAULT 'user'," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"UNIQUE INDEX `idx_users_username` (`username`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		},
	},
	{
		Version: 2,
		Name:    "create_content_tables",
		Stmts: []string{
			"CREATE TABLE IF NOT EXISTS `posts` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`title` VARCHAR(255) NOT NULL," +
				"`content` TEXT NOT NULL," +
				"`author` VARCHAR(64) NULL," +
				"`image_url` VARCHAR(1024) NULL," +
				"`tags` TEXT NULL," +
				"`likes` INT NOT NULL DEFAULT 0," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"INDEX `idx_posts_author` (`author`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
			"CREATE TABLE IF NOT EXISTS `quotes` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`text` TEXT NOT NULL," +
				"`author` VARCHAR(128) NULL," +
				"`created_by` VARCHAR(64) NULL," +
				"`category` VARCHAR(64) NULL," +
				"`tags` TEXT NULL," +
				"`likes` INT NOT NULL DEFAULT 0," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"INDEX `idx_quotes_created_by` (`created_by`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
			"CREATE TABLE IF NOT EXISTS `galleries` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`title` VARCHAR(255) NOT NULL," +
				"`description` TEXT NULL," +
				"`created_by` VARCHAR(64) NULL," +
				"`images` TEXT NOT NULL," +
				"`tags` TEXT NULL," +
				"`likes` INT NOT NULL DEFAULT 0," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"INDEX `idx_galleries_created_by` (`created_by`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
			"CREATE TABLE IF NOT EXISTS `videos` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`title` VARCHAR(255) NOT NULL," +
				"`description` TEXT NULL," +
				"`created_by` VARCHAR(64) NULL," +
				"`source` VARCHAR(16) NOT NULL," +
				"`url` VARCHAR(1024) NOT NULL," +
				"`tags` TEXT NULL," +
				"`likes` INT NOT NULL DEFAULT 0," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"INDEX `idx_videos_created_by` (`created_by`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
			"CREATE TABLE IF NOT EXISTS `audios` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`title` VARCHAR(255) NOT NULL," +
				"`description` TEXT NULL," +
				"`created_by` VARCHAR(64) NULL," +
				"`source` VARCHAR(16) NOT NULL," +
				"`url` VARCHAR(1024) NOT NULL," +
				"`created_at` DATETIME(3) NULL," +
				"`updated_at` DATETIME(3) NULL," +
				"INDEX `idx_audios_created_by` (`created_by`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		},
	},
	{
		Version: 3,
		Name:    "create_comments",
		Stmts: []string{
			"CREATE TABLE IF NOT EXISTS `comments` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`content_type` VARCHAR(16) NOT NULL," +
				"`content_id` BIGINT UNSIGNED NOT NULL," +
				"`author` VARCHAR(64) NULL," +
				"`text` TEXT NOT NULL," +
				"`created_at` DATETIME(3) NULL," +
				"INDEX `idx_comments_content` (`content_type`,`content_id`)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		},
	},
	{
		Version: 4,
		Name:    "create_stored_files",
		Stmts: []string{
			"CREATE TABLE IF NOT EXISTS `stored_files` (" +
				"`id` BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
				"`file_name` VARCHAR(255) NOT NULL," +
				"`file_path` VARCHAR(1024) NOT NULL," +
				"`url` VARCHAR(1024) NOT NULL," +
				"`mime_type` VARCHAR(128) NULL," +
				"`size_bytes` BIGINT NOT NULL DEFAULT 0," +
				"`created_at` DATETIME(3) NULL" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		},
	},
}

// RunMigrations applies all pending schema steps in version order.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(
		"CREATE TABLE IF NOT EXISTS `schema_migrations` (" +
			"`version` INT PRIMARY KEY," +
			"`name` VARCHAR(128) NOT NULL," +
			"`applied_at` DATETIME(3) NOT NULL" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[int]bool{}
	var rows []struct {
		Version int
	}
	if err := db.Raw("SELECT version FROM schema_migrations").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for _, row := range rows {
		applied[row.Version] = true
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range m.Stmts {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return tx.Exec(
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, NOW(3))",
				m.Version, m.Name,
			).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

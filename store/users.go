package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/utils"
)

const minPasswordLength = 3

// UserStore handles account registration and credential checks.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore on the given connection.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Register creates an account with a bcrypt-hashed password and the default
// non-admin role. Duplicate usernames report ErrConflict.
func (s *UserStore) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the username/password pair and returns the account.
// Any failure, including an unknown username, reports ErrUnauthorized so the
// response cannot distinguish the two cases.
func (s *UserStore) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrUnauthorized
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// FindByUsername loads an account by its unique username.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

// FindByID loads an account by id.
func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

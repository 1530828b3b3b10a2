package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
)

// CommentStore backs the single polymorphic comments table. All four
// commentable kinds share it through the content_type discriminator.
type CommentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a CommentStore on the given connection.
func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListComments returns comments for one (kind, contentID) pair, oldest first.
func (s *CommentStore) ListComments(kind Kind, contentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Where("content_type = ? AND content_id = ?", kind, contentID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// AddComment appends a comment and returns the full refreshed list for the
// content item. Returning the list rather than the new comment alone is part
// of the API contract.
func (s *CommentStore) AddComment(kind Kind, contentID uint, text, author string) ([]models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	comment := models.Comment{
		ContentType: string(kind),
		ContentID:   contentID,
		Author:      author,
		Text:        text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return s.ListComments(kind, contentID)
}

// DeleteComment removes a comment under the same owner-or-admin rule as
// content deletion, with existence checked first.
func (s *CommentStore) DeleteComment(id uint, req Requester) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return notFoundOr(err)
	}
	role := ResolveRole(s.db, req)
	if !CanModify(role, req.Username, comment.Author) {
		return ErrForbidden
	}
	return s.db.Delete(&comment).Error
}

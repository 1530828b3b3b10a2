package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
)

// ContentStore implements the generic CRUD + like contract shared by all
// content kinds. Creation is typed per kind so required fields are checked
// before anything is written; list, like, unlike and delete operate through
// the kind table mapping.
type ContentStore struct {
	db *gorm.DB
}

// NewContentStore creates a ContentStore on the given connection.
func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) listQuery(kind Kind, createdBy string) *gorm.DB {
	q := s.db.Table(kind.Table()).Order("created_at DESC, id DESC")
	if createdBy != "" {
		q = q.Where(kind.OwnerColumn()+" = ?", createdBy)
	}
	return q
}

// ListPosts returns posts newest first, optionally filtered by author.
func (s *ContentStore) ListPosts(createdBy string) ([]models.Post, error) {
	var items []models.Post
	err := s.listQuery(KindPost, createdBy).Find(&items).Error
	return items, err
}

// ListQuotes returns quotes newest first, optionally filtered by creator.
func (s *ContentStore) ListQuotes(createdBy string) ([]models.Quote, error) {
	var items []models.Quote
	err := s.listQuery(KindQuote, createdBy).Find(&items).Error
	return items, err
}

// ListGalleries returns galleries newest first, optionally filtered by creator.
func (s *ContentStore) ListGalleries(createdBy string) ([]models.Gallery, error) {
	var items []models.Gallery
	err := s.listQuery(KindGallery, createdBy).Find(&items).Error
	return items, err
}

// ListVideos returns videos newest first, optionally filtered by creator.
func (s *ContentStore) ListVideos(createdBy string) ([]models.Video, error) {
	var items []models.Video
	err := s.listQuery(KindVideo, createdBy).Find(&items).Error
	return items, err
}

// ListAudios returns audios newest first, optionally filtered by creator.
func (s *ContentStore) ListAudios(createdBy string) ([]models.Audio, error) {
	var items []models.Audio
	err := s.listQuery(KindAudio, createdBy).Find(&items).Error
	return items, err
}

func notFoundOr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	return err
}

// GetPost loads a single post by id.
func (s *ContentStore) GetPost(id uint) (*models.Post, error) {
	var item models.Post
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &item, nil
}

// GetQuote loads a single quote by id.
func (s *ContentStore) GetQuote(id uint) (*models.Quote, error) {
	var item models.Quote
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &item, nil
}

// GetGallery loads a single gallery by id.
func (s *ContentStore) GetGallery(id uint) (*models.Gallery, error) {
	var item models.Gallery
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &item, nil
}

// GetVideo loads a single video by id.
func (s *ContentStore) GetVideo(id uint) (*models.Video, error) {
	var item models.Video
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &item, nil
}

// GetAudio loads a single audio by id.
func (s *ContentStore) GetAudio(id uint) (*models.Audio, error) {
	var item models.Audio
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &item, nil
}

// CreatePost validates required fields and persists the post.
func (s *ContentStore) CreatePost(p *models.Post) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	return s.db.Create(p).Error
}

// CreateQuote validates required fields and persists the quote.
func (s *ContentStore) CreateQuote(q *models.Quote) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrValidation)
	}
	return s.db.Create(q).Error
}

// CreateGallery requires a title and at least one image.
func (s *ContentStore) CreateGallery(g *models.Gallery) error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(g.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrValidation)
	}
	return s.db.Create(g).Error
}

func validateMedia(title, source, url string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(source) == "" || strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: title, source and url are required", ErrValidation)
	}
	if source != models.SourceUpload && source != models.SourceURL {
		return fmt.Errorf("%w: source must be %q or %q", ErrValidation, models.SourceUpload, models.SourceURL)
	}
	return nil
}

// CreateVideo validates required fields and persists the video.
func (s *ContentStore) CreateVideo(v *models.Video) error {
	if err := validateMedia(v.Title, v.Source, v.URL); err != nil {
		return err
	}
	return s.db.Create(v).Error
}

// CreateAudio validates required fields and persists the audio.
func (s *ContentStore) CreateAudio(a *models.Audio) error {
	if err := validateMedia(a.Title, a.Source, a.URL); err != nil {
		return err
	}
	return s.db.Create(a).Error
}

// PostUpdate carries the mutable post fields for the PUT contract.
type PostUpdate struct {
	Title    string
	Content  string
	ImageURL string
}

// UpdatePost replaces title, content and image_url of an existing post.
func (s *ContentStore) UpdatePost(id uint, upd PostUpdate) (*models.Post, error) {
	if strings.TrimSpace(upd.Title) == "" || strings.TrimSpace(upd.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	post.Title = upd.Title
	post.Content = upd.Content
	post.ImageURL = upd.ImageURL
	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentStore) likeCount(kind Kind, id uint) (int, error) {
	var row struct {
		Likes int
	}
	err := s.db.Table(kind.Table()).Select("likes").Where("id = ?", id).Take(&row).Error
	if err != nil {
		return 0, notFoundOr(err)
	}
	return row.Likes, nil
}

// Like atomically increments the like counter and returns the new value.
func (s *ContentStore) Like(kind Kind, id uint) (int, error) {
	if !kind.HasLikes() {
		return 0, fmt.Errorf("%w: %s does not support likes", ErrValidation, kind)
	}
	res := s.db.Exec(fmt.Sprintf("UPDATE %s SET likes = likes + 1 WHERE id = ?", kind.Table()), id)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return s.likeCount(kind, id)
}

// Unlike atomically decrements the like counter, flooring at zero, and
// returns the new value. The floored decrement is a single UPDATE so
// concurrent requests cannot drive the counter negative.
func (s *ContentStore) Unlike(kind Kind, id uint) (int, error) {
	if !kind.HasLikes() {
		return 0, fmt.Errorf("%w: %s does not support likes", ErrValidation, kind)
	}
	if _, err := s.likeCount(kind, id); err != nil {
		return 0, err
	}
	res := s.db.Exec(fmt.Sprintf("UPDATE %s SET likes = likes - 1 WHERE id = ? AND likes > 0", kind.Table()), id)
	if res.Error != nil {
		return 0, res.Error
	}
	return s.likeCount(kind, id)
}

func (s *ContentStore) ownerOf(kind Kind, id uint) (string, error) {
	var row struct {
		Owner string
	}
	err := s.db.Table(kind.Table()).Select(kind.OwnerColumn()+" AS owner").Where("id = ?", id).Take(&row).Error
	if err != nil {
		return "", notFoundOr(err)
	}
	return row.Owner, nil
}

// Delete removes a content row after the owner-or-admin check. Existence is
// verified before ownership, so a missing id reports NotFound even when the
// requester would also have been denied.
func (s *ContentStore) Delete(kind Kind, id uint, req Requester) error {
	owner, err := s.ownerOf(kind, id)
	if err != nil {
		return err
	}
	role := ResolveRole(s.db, req)
	if !CanModify(role, req.Username, owner) {
		return ErrForbidden
	}
	return s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", kind.Table()), id).Error
}

// AdminDelete removes a content row for admin requesters only; ownership is
// irrelevant but the admin role is mandatory.
func (s *ContentStore) AdminDelete(kind Kind, id uint, req Requester) error {
	if _, err := s.ownerOf(kind, id); err != nil {
		return err
	}
	if ResolveRole(s.db, req) != models.RoleAdmin {
		return ErrForbidden
	}
	return s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", kind.Table()), id).Error
}

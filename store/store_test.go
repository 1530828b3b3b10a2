package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/featherpress/featherpress/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// the in-memory database is per connection
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	err := content.CreatePost(&models.Post{Title: "", Content: "body"})
	assert.ErrorIs(t, err, ErrValidation)
	err = content.CreatePost(&models.Post{Title: "title", Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no row may be persisted on validation failure")
}

func TestCreateQuoteValidation(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	assert.ErrorIs(t, content.CreateQuote(&models.Quote{Text: ""}), ErrValidation)

	quote := models.Quote{Text: "stay hungry", Author: "someone", CreatedBy: "alice"}
	require.NoError(t, content.CreateQuote(&quote))
	assert.NotZero(t, quote.ID)
	assert.Equal(t, 0, quote.Likes)
}

func TestCreateGalleryRequiresImage(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	err := content.CreateGallery(&models.Gallery{Title: "G", Images: nil})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Gallery{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	g := models.Gallery{Title: "G", Images: []models.GalleryImage{{URL: "/static/a.jpg"}}}
	require.NoError(t, content.CreateGallery(&g))
	got, err := content.GetGallery(g.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "/static/a.jpg", got.Images[0].URL)
}

func TestCreateVideoValidatesSource(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	err := content.CreateVideo(&models.Video{Title: "t", Source: "torrent", URL: "u"})
	assert.ErrorIs(t, err, ErrValidation)
	err = content.CreateVideo(&models.Video{Title: "t", Source: models.SourceURL, URL: ""})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, content.CreateVideo(&models.Video{
		Title: "t", Source: models.SourceUpload, URL: "/static/v.mp4",
	}))
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	post := models.Post{Title: "T", Content: "C"}
	require.NoError(t, content.CreatePost(&post))

	likes, err := content.Like(KindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = content.Like(KindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	likes, err = content.Unlike(KindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = content.Unlike(KindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)

	// already at zero: stays at zero, never negative
	likes, err = content.Unlike(KindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
}

func TestLikeMissingID(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	_, err := content.Like(KindPost, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = content.Unlike(KindQuote, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeRejectedForAudio(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	audio := models.Audio{Title: "a", Source: models.SourceURL, URL: "http://x/a.mp3"}
	require.NoError(t, content.CreateAudio(&audio))

	_, err := content.Like(KindAudio, audio.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListNewestFirstWithFilter(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	first := models.Post{Title: "first", Content: "c", Author: "alice"}
	second := models.Post{Title: "second", Content: "c", Author: "bob"}
	third := models.Post{Title: "third", Content: "c", Author: "alice"}
	require.NoError(t, content.CreatePost(&first))
	require.NoError(t, content.CreatePost(&second))
	require.NoError(t, content.CreatePost(&third))

	all, err := content.ListPosts("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)

	mine, err := content.ListPosts("alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		assert.Equal(t, "alice", p.Author)
	}
}

func TestDeleteChecksExistenceBeforeOwnership(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	seedUser(t, db, "mallory", models.RoleUser)

	// both NotFound and Forbidden would apply; NotFound wins
	err := content.Delete(KindPost, 9999, Requester{Username: "mallory"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOwnerOrAdmin(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	seedUser(t, db, "alice", models.RoleUser)
	seedUser(t, db, "root", models.RoleAdmin)

	post := models.Post{Title: "T", Content: "C", Author: "alice"}
	require.NoError(t, content.CreatePost(&post))

	// stranger, even one without an account
	err := content.Delete(KindPost, post.ID, Requester{Username: "eve"})
	assert.ErrorIs(t, err, ErrForbidden)

	// anonymous
	err = content.Delete(KindPost, post.ID, Requester{})
	assert.ErrorIs(t, err, ErrForbidden)

	// owner
	require.NoError(t, content.Delete(KindPost, post.ID, Requester{Username: "alice"}))
	_, err = content.GetPost(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// admin may delete someone else's content
	other := models.Post{Title: "T2", Content: "C", Author: "alice"}
	require.NoError(t, content.CreatePost(&other))
	require.NoError(t, content.Delete(KindPost, other.ID, Requester{Username: "root"}))
}

func TestAdminDeleteRequiresAdminRole(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	alice := seedUser(t, db, "alice", models.RoleUser)
	root := seedUser(t, db, "root", models.RoleAdmin)

	post := models.Post{Title: "T", Content: "C", Author: "alice"}
	require.NoError(t, content.CreatePost(&post))

	// even the owner is refused on the admin route
	err := content.AdminDelete(KindPost, post.ID, Requester{UserID: alice.ID, Username: "alice"})
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, content.AdminDelete(KindPost, post.ID, Requester{UserID: root.ID}))

	err = content.AdminDelete(KindPost, post.ID, Requester{UserID: root.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)

	post := models.Post{Title: "old", Content: "old body"}
	require.NoError(t, content.CreatePost(&post))

	updated, err := content.UpdatePost(post.ID, PostUpdate{Title: "new", Content: "new body", ImageURL: "/static/i.png"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "/static/i.png", updated.ImageURL)

	_, err = content.UpdatePost(9999, PostUpdate{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = content.UpdatePost(post.ID, PostUpdate{Title: "", Content: "y"})
	assert.ErrorIs(t, err, ErrValidation)
}

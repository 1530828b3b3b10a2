package client

import (
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/featherpress/featherpress/config"
	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/routes"
	"github.com/featherpress/featherpress/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	config.SetForTesting(config.AppConfig{
		GinMode:            "test",
		JWTSecret:          "test-secret",
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 100000,
		UploadDir:          t.TempDir(),
		UploadMaxSizeMB:    8,
		RedisHost:          "127.0.0.1",
		RedisPort:          6399,
		LogLevel:           "error",
		GinPath:            filepath.Join(t.TempDir(), "gin.log"),
		LogMaxSizeMB:       1,
		LogMaxBackups:      1,
		LogMaxAgeDays:      1,
	})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, store.AutoMigrate(db))

	srv := httptest.NewServer(routes.SetupRouter(db))
	t.Cleanup(srv.Close)
	return srv, db
}

func TestClientAuthAndPosts(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL)

	user, err := c.Register("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, _, err = c.Login("alice", "wrong")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.Status)

	token, user, err := c.Login("alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	post, err := c.CreatePost(PostInput{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	// no explicit author: the bearer identity fills it in
	assert.Equal(t, "alice", post.Author)

	likes, err := c.Like("posts", post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	likes, err = c.Unlike("posts", post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)

	got, err := c.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	updated, err := c.UpdatePost(post.ID, "Hello v2", "World v2", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello v2", updated.Title)

	items, err := c.ListPosts("alice")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, c.Delete("posts", post.ID, user.ID, user.Username))
	_, err = c.GetPost(post.ID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}

func TestClientCommentsAndMedia(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL)

	video, err := c.CreateVideo(MediaInput{
		Title: "Clip", Source: models.SourceURL, URL: "https://example.com/v.mp4", CreatedBy: "alice",
	})
	require.NoError(t, err)

	comments, err := c.AddComment("videos", video.ID, "first", "bob")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comments, err = c.AddComment("videos", video.ID, "second", "carol")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)

	comments, err = c.ListComments("videos", video.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	_, err = c.CreateGallery(GalleryInput{Title: "Empty"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)

	gallery, err := c.CreateGallery(GalleryInput{
		Title:  "Trip",
		Images: []models.GalleryImage{{URL: "/static/uploads/a.jpg"}},
	})
	require.NoError(t, err)
	assert.NotZero(t, gallery.ID)

	audio, err := c.CreateAudio(MediaInput{
		Title: "Song", Source: models.SourceUpload, URL: "/static/uploads/s.mp3",
	})
	require.NoError(t, err)

	// audios carry no like counter
	_, err = c.Like("audios", audio.ID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}

func TestClientQuoteOwnership(t *testing.T) {
	srv, db := newTestServer(t)
	c := New(srv.URL)

	admin := models.User{Username: "root", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	alice := models.User{Username: "alice", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&alice).Error)

	quote, err := c.CreateQuote(QuoteInput{Text: "less is more", CreatedBy: "alice"})
	require.NoError(t, err)

	err = c.Delete("quotes", quote.ID, 0, "eve")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.Status)

	require.NoError(t, c.Delete("quotes", quote.ID, admin.ID, ""))

	err = c.Delete("quotes", quote.ID, admin.ID, "")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/featherpress/featherpress/config"
	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/store"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
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
	return SetupRouter(db), db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func dataField(t *testing.T, env envelope, key string, out interface{}) {
	t.Helper()
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &data))
	raw, ok := data[key]
	require.True(t, ok, "data has no %q field: %s", key, string(env.Data))
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestPostLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/posts", map[string]interface{}{
		"title": "Hello", "content": "World", "author": "alice", "tags": []string{"go", "go", "intro"},
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var post models.Post
	dataField(t, env, "post", &post)
	assert.NotZero(t, post.ID)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, []string{"go", "intro"}, post.Tags)

	base := fmt.Sprintf("/api/posts/%d", post.ID)

	for want := 1; want <= 2; want++ {
		status, env = doJSON(t, r, http.MethodPost, base+"/like", nil, "")
		require.Equal(t, http.StatusOK, status)
		var likes int
		dataField(t, env, "likes", &likes)
		assert.Equal(t, want, likes)
	}

	status, env = doJSON(t, r, http.MethodPost, base+"/unlike", nil, "")
	require.Equal(t, http.StatusOK, status)
	var likes int
	dataField(t, env, "likes", &likes)
	assert.Equal(t, 1, likes)

	status, env = doJSON(t, r, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, status)
	dataField(t, env, "post", &post)
	assert.Equal(t, 1, post.Likes)

	status, env = doJSON(t, r, http.MethodPut, base, map[string]string{
		"title": "Hello v2", "content": "World v2",
	}, "")
	require.Equal(t, http.StatusOK, status)
	dataField(t, env, "post", &post)
	assert.Equal(t, "Hello v2", post.Title)

	status, env = doJSON(t, r, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, status)
	var items []models.Post
	dataField(t, env, "items", &items)
	require.Len(t, items, 1)
}

func TestLikeUnknownPost(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/posts/424242/like", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 40401, env.Code)

	status, _ = doJSON(t, r, http.MethodPost, "/api/posts/abc/like", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGalleryRequiresImages(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/galleries", map[string]interface{}{
		"title": "Empty", "images": []interface{}{},
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 40001, env.Code)

	status, env = doJSON(t, r, http.MethodPost, "/api/galleries", map[string]interface{}{
		"title":  "Trip",
		"images": []map[string]string{{"url": "/static/uploads/a.jpg"}},
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var gallery models.Gallery
	dataField(t, env, "gallery", &gallery)
	require.Len(t, gallery.Images, 1)
}

func TestVideoCommentRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/videos", map[string]interface{}{
		"title": "Clip", "source": "url", "url": "https://example.com/v.mp4", "created_by": "alice",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var video models.Video
	dataField(t, env, "video", &video)

	path := fmt.Sprintf("/api/videos/%d/comments", video.ID)

	status, env = doJSON(t, r, http.MethodPost, path, map[string]string{
		"text": "nice one", "author": "bob",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var comments []models.Comment
	dataField(t, env, "comments", &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Text)
	assert.Equal(t, "video", comments[0].ContentType)

	status, env = doJSON(t, r, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, status)
	dataField(t, env, "comments", &comments)
	require.Len(t, comments, 1)

	// audios never expose comment routes
	status, _ = doJSON(t, r, http.MethodGet, "/api/audios/1/comments", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAudioHasNoLikeRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/audios", map[string]interface{}{
		"title": "Song", "source": "url", "url": "https://example.com/a.mp3",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var audio models.Audio
	dataField(t, env, "audio", &audio)

	status, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/audios/%d/like", audio.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "secret",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, env = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "other",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 40901, env.Code)

	status, env = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "bob", "password": "ab",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, status)
	var token string
	dataField(t, env, "token", &token)
	require.NotEmpty(t, token)

	status, _ = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	dataField(t, env, "user", &me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, models.RoleUser, me.Role)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "carol", "password": "secret",
	}, "")
	status, env := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "carol", "password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, status)
	var token string
	dataField(t, env, "token", &token)

	status, _ = doJSON(t, r, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeleteOwnership(t *testing.T) {
	r, db := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "secret",
	}, "")
	admin := models.User{Username: "root", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	status, env := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"text": "less is more", "created_by": "alice",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var quote models.Quote
	dataField(t, env, "quote", &quote)

	base := fmt.Sprintf("/api/quotes/%d", quote.ID)

	status, _ = doJSON(t, r, http.MethodDelete, base+"?username=eve", nil, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, r, http.MethodDelete, base+"?username=root", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, r, http.MethodDelete, base+"?username=root", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminDeleteRoute(t *testing.T) {
	r, db := newTestRouter(t)

	admin := models.User{Username: "root", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	status, env := doJSON(t, r, http.MethodPost, "/api/posts", map[string]interface{}{
		"title": "T", "content": "C", "author": "alice",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var post models.Post
	dataField(t, env, "post", &post)

	path := fmt.Sprintf("/api/admin/posts/%d", post.ID)

	status, _ = doJSON(t, r, http.MethodDelete, path+"?username=alice", nil, "")
	assert.Equal(t, http.StatusForbidden, status, "owner without admin role is refused")

	status, _ = doJSON(t, r, http.MethodDelete, path+"?username=root", nil, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, r, http.MethodDelete, "/api/admin/widgets/1?username=root", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthAndNoRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)

	status, env = doJSON(t, r, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 40400, env.Code)
}

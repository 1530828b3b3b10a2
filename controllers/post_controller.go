package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	content *store.ContentStore
}

// NewPostController creates a new PostController instance.
func NewPostController(content *store.ContentStore) *PostController {
	return &PostController{content: content}
}

// ListPosts returns posts newest first, optionally filtered by author.
func (p *PostController) ListPosts(ctx *gin.Context) {
	createdBy := strings.TrimSpace(ctx.Query("created_by"))

	cacheKey := "cache:posts:list:by=" + createdBy
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.content.ListPosts(createdBy)
	if err != nil {
		handleStoreError(ctx, err, 50020, "failed to list posts")
		return
	}

	payload := gin.H{"items": posts}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post or 404.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	cacheKey := "cache:posts:detail:" + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.content.GetPost(id)
	if err != nil {
		handleStoreError(ctx, err, 50021, "failed to load post")
		return
	}

	payload := gin.H{"post": post}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost validates the payload and persists a new post.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Author   string   `json:"author"`
		ImageURL string   `json:"image_url"`
		Tags     []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = getUsername(ctx)
	}

	post := models.Post{
		Title:    utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Content:  utils.Sanitize(req.Content),
		Author:   author,
		ImageURL: strings.TrimSpace(req.ImageURL),
		Tags:     utils.NormalizeTags(req.Tags),
	}
	if err := p.content.CreatePost(&post); err != nil {
		handleStoreError(ctx, err, 50022, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost replaces title, content and image_url of an existing post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	post, err := p.content.UpdatePost(id, store.PostUpdate{
		Title:    utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Content:  utils.Sanitize(req.Content),
		ImageURL: strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		handleStoreError(ctx, err, 50023, "failed to update post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"post": post})
}

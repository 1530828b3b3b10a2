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

// VideoController manages CRUD operations for videos.
type VideoController struct {
	content *store.ContentStore
}

// NewVideoController creates a new VideoController instance.
func NewVideoController(content *store.ContentStore) *VideoController {
	return &VideoController{content: content}
}

// ListVideos returns videos newest first, optionally filtered by creator.
func (v *VideoController) ListVideos(ctx *gin.Context) {
	createdBy := strings.TrimSpace(ctx.Query("created_by"))

	cacheKey := "cache:videos:list:by=" + createdBy
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	videos, err := v.content.ListVideos(createdBy)
	if err != nil {
		handleStoreError(ctx, err, 50320, "failed to list videos")
		return
	}

	payload := gin.H{"items": videos}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// GetVideo returns a single video or 404.
func (v *VideoController) GetVideo(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	video, err := v.content.GetVideo(id)
	if err != nil {
		handleStoreError(ctx, err, 50321, "failed to load video")
		return
	}
	utils.Success(ctx, gin.H{"video": video})
}

// CreateVideo validates the payload and persists a new video.
func (v *VideoController) CreateVideo(ctx *gin.Context) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		CreatedBy   string   `json:"created_by"`
		Source      string   `json:"source"`
		URL         string   `json:"url"`
		Tags        []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40320, "invalid request payload")
		return
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = getUsername(ctx)
	}

	video := models.Video{
		Title:       utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		CreatedBy:   createdBy,
		Source:      strings.TrimSpace(req.Source),
		URL:         strings.TrimSpace(req.URL),
		Tags:        utils.NormalizeTags(req.Tags),
	}
	if err := v.content.CreateVideo(&video); err != nil {
		handleStoreError(ctx, err, 50322, "failed to create video")
		return
	}

	utils.InvalidateByPrefix("cache:videos:")
	utils.Created(ctx, gin.H{"video": video})
}

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

// AudioController manages CRUD operations for audios. Audios carry no like
// counter and take no comments.
type AudioController struct {
	content *store.ContentStore
}

// NewAudioController creates a new AudioController instance.
func NewAudioController(content *store.ContentStore) *AudioController {
	return &AudioController{content: content}
}

// ListAudios returns audios newest first, optionally filtered by creator.
func (a *AudioController) ListAudios(ctx *gin.Context) {
	createdBy := strings.TrimSpace(ctx.Query("created_by"))

	cacheKey := "cache:audios:list:by=" + createdBy
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	audios, err := a.content.ListAudios(createdBy)
	if err != nil {
		handleStoreError(ctx, err, 50420, "failed to list audios")
		return
	}

	payload := gin.H{"items": audios}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// GetAudio returns a single audio or 404.
func (a *AudioController) GetAudio(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	audio, err := a.content.GetAudio(id)
	if err != nil {
		handleStoreError(ctx, err, 50421, "failed to load audio")
		return
	}
	utils.Success(ctx, gin.H{"audio": audio})
}

// CreateAudio validates the payload and persists a new audio.
func (a *AudioController) CreateAudio(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CreatedBy   string `json:"created_by"`
		Source      string `json:"source"`
		URL         string `json:"url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40420, "invalid request payload")
		return
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = getUsername(ctx)
	}

	audio := models.Audio{
		Title:       utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		CreatedBy:   createdBy,
		Source:      strings.TrimSpace(req.Source),
		URL:         strings.TrimSpace(req.URL),
	}
	if err := a.content.CreateAudio(&audio); err != nil {
		handleStoreError(ctx, err, 50422, "failed to create audio")
		return
	}

	utils.InvalidateByPrefix("cache:audios:")
	utils.Created(ctx, gin.H{"audio": audio})
}

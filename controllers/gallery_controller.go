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

// GalleryController manages CRUD operations for image galleries.
type GalleryController struct {
	content *store.ContentStore
}

// NewGalleryController creates a new GalleryController instance.
func NewGalleryController(content *store.ContentStore) *GalleryController {
	return &GalleryController{content: content}
}

// ListGalleries returns galleries newest first, optionally filtered by creator.
func (g *GalleryController) ListGalleries(ctx *gin.Context) {
	createdBy := strings.TrimSpace(ctx.Query("created_by"))

	cacheKey := "cache:galleries:list:by=" + createdBy
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	galleries, err := g.content.ListGalleries(createdBy)
	if err != nil {
		handleStoreError(ctx, err, 50220, "failed to list galleries")
		return
	}

	payload := gin.H{"items": galleries}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// GetGallery returns a single gallery or 404.
func (g *GalleryController) GetGallery(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	gallery, err := g.content.GetGallery(id)
	if err != nil {
		handleStoreError(ctx, err, 50221, "failed to load gallery")
		return
	}
	utils.Success(ctx, gin.H{"gallery": gallery})
}

// CreateGallery validates the payload, including the at-least-one-image
// rule, and persists a new gallery.
func (g *GalleryController) CreateGallery(ctx *gin.Context) {
	var req struct {
		Title       string                `json:"title"`
		Description string                `json:"description"`
		CreatedBy   string                `json:"created_by"`
		Images      []models.GalleryImage `json:"images"`
		Tags        []string              `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40220, "invalid request payload")
		return
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = getUsername(ctx)
	}

	gallery := models.Gallery{
		Title:       utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		CreatedBy:   createdBy,
		Images:      req.Images,
		Tags:        utils.NormalizeTags(req.Tags),
	}
	if err := g.content.CreateGallery(&gallery); err != nil {
		handleStoreError(ctx, err, 50222, "failed to create gallery")
		return
	}

	utils.InvalidateByPrefix("cache:galleries:")
	utils.Created(ctx, gin.H{"gallery": gallery})
}

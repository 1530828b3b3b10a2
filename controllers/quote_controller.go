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

// QuoteController manages CRUD operations for quotes.
type QuoteController struct {
	content *store.ContentStore
}

// NewQuoteController creates a new QuoteController instance.
func NewQuoteController(content *store.ContentStore) *QuoteController {
	return &QuoteController{content: content}
}

// ListQuotes returns quotes newest first, optionally filtered by creator.
func (q *QuoteController) ListQuotes(ctx *gin.Context) {
	createdBy := strings.TrimSpace(ctx.Query("created_by"))

	cacheKey := "cache:quotes:list:by=" + createdBy
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	quotes, err := q.content.ListQuotes(createdBy)
	if err != nil {
		handleStoreError(ctx, err, 50120, "failed to list quotes")
		return
	}

	payload := gin.H{"items": quotes}
	utils.CacheSetJSON(cacheKey, cacheWrap(payload), time.Hour)
	utils.Success(ctx, payload)
}

// GetQuote returns a single quote or 404.
func (q *QuoteController) GetQuote(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	quote, err := q.content.GetQuote(id)
	if err != nil {
		handleStoreError(ctx, err, 50121, "failed to load quote")
		return
	}
	utils.Success(ctx, gin.H{"quote": quote})
}

// CreateQuote validates the payload and persists a new quote.
func (q *QuoteController) CreateQuote(ctx *gin.Context) {
	var req struct {
		Text      string   `json:"text"`
		Author    string   `json:"author"`
		CreatedBy string   `json:"created_by"`
		Category  string   `json:"category"`
		Tags      []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40120, "invalid request payload")
		return
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = getUsername(ctx)
	}

	quote := models.Quote{
		Text:      utils.SanitizePlain(strings.TrimSpace(req.Text)),
		Author:    strings.TrimSpace(req.Author),
		CreatedBy: createdBy,
		Category:  strings.TrimSpace(req.Category),
		Tags:      utils.NormalizeTags(req.Tags),
	}
	if err := q.content.CreateQuote(&quote); err != nil {
		handleStoreError(ctx, err, 50122, "failed to create quote")
		return
	}

	utils.InvalidateByPrefix("cache:quotes:")
	utils.Created(ctx, gin.H{"quote": quote})
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

// CommentController serves the polymorphic comment endpoints shared by
// posts, quotes, videos and galleries. Handlers are bound to a kind at route
// registration, where the plural segment has already been resolved through
// the discriminator lookup table.
type CommentController struct {
	comments *store.CommentStore
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments *store.CommentStore) *CommentController {
	return &CommentController{comments: comments}
}

// List returns the comment list for one content item, oldest first.
func (c *CommentController) List(kind store.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		comments, err := c.comments.ListComments(kind, id)
		if err != nil {
			handleStoreError(ctx, err, 50520, "failed to list comments")
			return
		}
		utils.Success(ctx, gin.H{"comments": comments})
	}
}

// Create appends a comment and responds with the full refreshed list, which
// is the contract clients rely on.
func (c *CommentController) Create(kind store.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		var req struct {
			Text   string `json:"text"`
			Author string `json:"author"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40520, "invalid request payload")
			return
		}

		author := strings.TrimSpace(req.Author)
		if author == "" {
			author = getUsername(ctx)
		}

		comments, err := c.comments.AddComment(kind, id, utils.SanitizePlain(req.Text), author)
		if err != nil {
			handleStoreError(ctx, err, 50521, "failed to create comment")
			return
		}
		utils.Created(ctx, gin.H{"comments": comments})
	}
}

// Delete removes a comment under the owner-or-admin rule.
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "commentId")
	if !ok {
		return
	}
	if err := c.comments.DeleteComment(id, requesterFrom(ctx)); err != nil {
		handleStoreError(ctx, err, 50522, "failed to delete comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

// The like, unlike and delete operations are identical across kinds, so the
// router shares these handler factories instead of repeating the ownership
// logic route by route.

// LikeHandler increments the like counter of one content item.
func LikeHandler(content *store.ContentStore, kind store.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		likes, err := content.Like(kind, id)
		if err != nil {
			handleStoreError(ctx, err, 50040, "failed to like "+string(kind))
			return
		}
		utils.InvalidateByPrefix("cache:" + kind.Table() + ":")
		utils.Success(ctx, gin.H{"likes": likes})
	}
}

// UnlikeHandler decrements the like counter, flooring at zero.
func UnlikeHandler(content *store.ContentStore, kind store.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		likes, err := content.Unlike(kind, id)
		if err != nil {
			handleStoreError(ctx, err, 50041, "failed to unlike "+string(kind))
			return
		}
		utils.InvalidateByPrefix("cache:" + kind.Table() + ":")
		utils.Success(ctx, gin.H{"likes": likes})
	}
}

// DeleteHandler removes one content item under the owner-or-admin rule.
func DeleteHandler(content *store.ContentStore, kind store.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		if err := content.Delete(kind, id, requesterFrom(ctx)); err != nil {
			handleStoreError(ctx, err, 50042, "failed to delete "+string(kind))
			return
		}
		utils.InvalidateByPrefix("cache:" + kind.Table() + ":")
		utils.Success(ctx, gin.H{"message": string(kind) + " deleted"})
	}
}

// AdminDeleteByPlural serves DELETE /api/admin/{resource}/{id} for every
// content kind; the requester must resolve to the admin role.
func AdminDeleteByPlural(content *store.ContentStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		kind, ok := store.KindFromPlural(ctx.Param("resource"))
		if !ok {
			utils.Error(ctx, http.StatusNotFound, 40402, "unknown resource")
			return
		}
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		if err := content.AdminDelete(kind, id, requesterFrom(ctx)); err != nil {
			handleStoreError(ctx, err, 50043, "failed to delete "+string(kind))
			return
		}
		utils.InvalidateByPrefix("cache:" + kind.Table() + ":")
		utils.Success(ctx, gin.H{"message": string(kind) + " deleted"})
	}
}

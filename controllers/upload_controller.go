package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/featherpress/featherpress/config"
	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

// UploadController stores multipart uploads on local disk and records them
// so /api/uploads can enumerate stored URLs.
type UploadController struct {
	files *store.FileStore
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(files *store.FileStore) *UploadController {
	return &UploadController{files: files}
}

func allowedMime(mime string) bool {
	return strings.HasPrefix(mime, "image/") ||
		strings.HasPrefix(mime, "video/") ||
		strings.HasPrefix(mime, "audio/")
}

// Upload accepts one multipart file, bounded in size and restricted to
// image, video and audio mime types, and returns its public URL.
func (u *UploadController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	defer file.Close()

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxSizeMB) * 1024 * 1024

	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}
	mime := header.Header.Get("Content-Type")
	if !allowedMime(mime) {
		utils.Error(ctx, http.StatusBadRequest, 40033, "only image, video and audio files are accepted")
		return
	}

	now := time.Now()
	shard := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))
	baseDir := filepath.Join(cfg.UploadDir, shard)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create upload directory")
		return
	}

	// uuid names prevent collisions and path guessing; the original name is
	// kept only as metadata
	ext := filepath.Ext(filepath.Base(header.Filename))
	safeName := uuid.New().String() + strings.ToLower(ext)
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to save file")
		return
	}
	defer out.Close()

	// The multipart header size is client supplied; enforce the cap on the
	// actual bytes with a limited reader.
	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to write file")
		return
	}
	if written > maxSize {
		_ = out.Close()
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	relURL := "/static/uploads/" + filepath.ToSlash(filepath.Join(shard, safeName))
	absPath, _ := filepath.Abs(dstPath)
	record := models.StoredFile{
		FileName:  filepath.Base(header.Filename),
		FilePath:  absPath,
		URL:       relURL,
		MimeType:  mime,
		SizeBytes: written,
	}
	if err := u.files.Record(&record); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnw("failed to record stored file", "error", err, "path", absPath)
		}
	}

	utils.Created(ctx, gin.H{"url": relURL})
}

// ListUploads enumerates stored files newest first.
func (u *UploadController) ListUploads(ctx *gin.Context) {
	files, err := u.files.List()
	if err != nil {
		handleStoreError(ctx, err, 50033, "failed to list uploads")
		return
	}
	utils.Success(ctx, gin.H{"items": files})
}

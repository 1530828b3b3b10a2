package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/featherpress/featherpress/config"
	"github.com/featherpress/featherpress/controllers"
	"github.com/featherpress/featherpress/middleware"
	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

// SetupRouter wires routes, middlewares, stores and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static/uploads", cfg.UploadDir)

	contentStore := store.NewContentStore(db)
	commentStore := store.NewCommentStore(db)
	userStore := store.NewUserStore(db)
	fileStore := store.NewFileStore(db)

	authController := controllers.NewAuthController(userStore)
	postController := controllers.NewPostController(contentStore)
	quoteController := controllers.NewQuoteController(contentStore)
	galleryController := controllers.NewGalleryController(contentStore)
	videoController := controllers.NewVideoController(contentStore)
	audioController := controllers.NewAudioController(contentStore)
	commentController := controllers.NewCommentController(commentStore)
	uploadController := controllers.NewUploadController(fileStore)
	healthController := controllers.NewHealthController(db)

	api := r.Group("/api")
	api.Use(middleware.AuthOptional())

	api.GET("/health", healthController.Health)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	api.POST("/upload", middleware.RateLimitMiddleware(), uploadController.Upload)
	api.GET("/uploads", uploadController.ListUploads)

	posts := api.Group("/posts")
	posts.GET("", postController.ListPosts)
	posts.GET("/:id", postController.GetPost)
	posts.POST("", postController.CreatePost)
	posts.PUT("/:id", postController.UpdatePost)
	registerContentActions(posts, contentStore, store.KindPost)
	registerComments(posts, commentController, store.KindPost)

	quotes := api.Group("/quotes")
	quotes.GET("", quoteController.ListQuotes)
	quotes.GET("/:id", quoteController.GetQuote)
	quotes.POST("", quoteController.CreateQuote)
	registerContentActions(quotes, contentStore, store.KindQuote)
	registerComments(quotes, commentController, store.KindQuote)

	galleries := api.Group("/galleries")
	galleries.GET("", galleryController.ListGalleries)
	galleries.GET("/:id", galleryController.GetGallery)
	galleries.POST("", galleryController.CreateGallery)
	registerContentActions(galleries, contentStore, store.KindGallery)
	registerComments(galleries, commentController, store.KindGallery)

	videos := api.Group("/videos")
	videos.GET("", videoController.ListVideos)
	videos.GET("/:id", videoController.GetVideo)
	videos.POST("", videoController.CreateVideo)
	registerContentActions(videos, contentStore, store.KindVideo)
	registerComments(videos, commentController, store.KindVideo)

	audios := api.Group("/audios")
	audios.GET("", audioController.ListAudios)
	audios.GET("/:id", audioController.GetAudio)
	audios.POST("", audioController.CreateAudio)
	audios.DELETE("/:id", controllers.DeleteHandler(contentStore, store.KindAudio))

	api.DELETE("/comments/:commentId", commentController.Delete)

	admin := api.Group("/admin")
	admin.DELETE("/:resource/:id", controllers.AdminDeleteByPlural(contentStore))

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}

// registerContentActions mounts the like/unlike/delete trio shared by all
// liked kinds.
func registerContentActions(g *gin.RouterGroup, content *store.ContentStore, kind store.Kind) {
	g.POST("/:id/like", controllers.LikeHandler(content, kind))
	g.POST("/:id/unlike", controllers.UnlikeHandler(content, kind))
	g.DELETE("/:id", controllers.DeleteHandler(content, kind))
}

// registerComments mounts the polymorphic comment pair for a commentable kind.
func registerComments(g *gin.RouterGroup, c *controllers.CommentController, kind store.Kind) {
	g.GET("/:id/comments", c.List(kind))
	g.POST("/:id/comments", c.Create(kind))
}

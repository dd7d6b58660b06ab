package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/client"
	"social-feed-api/internal/config"
	"social-feed-api/internal/handler"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/middleware"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/service"
)

// feedCacheTTL is the lifetime of a cached enriched post
const feedCacheTTL = 2 * time.Minute

// Config holds everything the router needs to wire the application
type Config struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Storage client.StorageClient
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "social-feed-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "social-feed-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	postRepo := repository.NewPostRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	likeRepo := repository.NewLikeRepository(cfg.DB)
	txManager := repository.NewTxManager(cfg.DB)

	feedCache := cache.NewFeedCache(cfg.Redis, feedCacheTTL, cfg.Logger)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.Storage, cfg.Cfg.JWT, cfg.Logger)
	postService := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo,
		txManager, cfg.Storage, feedCache, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, postRepo, likeRepo, userRepo,
		txManager, feedCache, cfg.Metrics, cfg.Logger)
	likeService := service.NewLikeService(likeRepo, postRepo, commentRepo, userRepo,
		feedCache, cfg.Metrics, cfg.Logger)
	feedService := service.NewFeedService(postRepo, commentRepo, likeRepo, userRepo,
		feedCache, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, cfg.Storage, cfg.Logger)
	postHandler := handler.NewPostHandler(postService, cfg.Storage, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	feedHandler := handler.NewFeedHandler(feedService)

	api := r.Group(cfg.Cfg.Server.BasePath)
	authMiddleware := middleware.Auth(cfg.Cfg.JWT.Secret)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authMiddleware, authHandler.GetMe)
		auth.PATCH("/update-profile", authMiddleware, authHandler.UpdateProfile)
	}

	// ============================================================
	// Post routes
	// ============================================================
	posts := api.Group("/posts")
	posts.Use(authMiddleware)
	{
		posts.POST("", postHandler.CreatePost)
		posts.GET("/:postId", postHandler.GetPost)
		posts.PATCH("/:postId", postHandler.EditPostContent)
		posts.DELETE("/:postId", postHandler.DeletePost)
		posts.POST("/:postId/images", postHandler.AddPostImages)
		posts.DELETE("/:postId/images", postHandler.DeletePostImages)
	}

	// ============================================================
	// Comment routes
	// ============================================================
	comments := api.Group("/comments")
	comments.Use(authMiddleware)
	{
		comments.POST("/post/:postId", commentHandler.CreateComment)
		comments.GET("/post/:postId", commentHandler.GetPostComments)
		comments.GET("/:commentId", commentHandler.GetComment)
		comments.PATCH("/:commentId", commentHandler.EditComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
		comments.POST("/:commentId/replies", commentHandler.CreateReply)
		comments.GET("/:commentId/replies", commentHandler.GetCommentReplies)
	}

	// ============================================================
	// Like routes
	// ============================================================
	likes := api.Group("/likes")
	likes.Use(authMiddleware)
	{
		likes.POST("/post/:postId", likeHandler.TogglePostLike)
		likes.GET("/post/:postId", likeHandler.GetPostLikes)
		likes.GET("/post/:postId/count", likeHandler.GetPostLikesCount)
		likes.POST("/comment/:commentId", likeHandler.ToggleCommentLike)
		likes.GET("/comment/:commentId", likeHandler.GetCommentLikes)
		likes.GET("/comment/:commentId/count", likeHandler.GetCommentLikesCount)
	}

	// ============================================================
	// Feed routes
	// ============================================================
	feed := api.Group("/feed")
	feed.Use(authMiddleware)
	{
		feed.GET("", feedHandler.ListPosts)
		feed.GET("/user/:userId", feedHandler.ListUserPosts)
		feed.GET("/:postId", feedHandler.GetPost)
	}

	return r
}

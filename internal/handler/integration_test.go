package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"social-feed-api/internal/client"
	"social-feed-api/internal/config"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// setupIntegrationTestDB creates an in-memory SQLite database for integration
// testing. Tables are created manually for SQLite compatibility (no UUID type
// or gen_random_uuid()).
func setupIntegrationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL
		)
	`).Error
	require.NoError(t, err, "Failed to create users table")

	err = db.Exec(`
		CREATE TABLE posts (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL,
			images TEXT
		)
	`).Error
	require.NoError(t, err, "Failed to create posts table")

	err = db.Exec(`
		CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			user_id TEXT NOT NULL,
			post_id TEXT NOT NULL,
			parent_comment_id TEXT,
			content TEXT NOT NULL
		)
	`).Error
	require.NoError(t, err, "Failed to create comments table")

	err = db.Exec(`
		CREATE TABLE post_likes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			post_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE(user_id, post_id)
		)
	`).Error
	require.NoError(t, err, "Failed to create post_likes table")

	err = db.Exec(`
		CREATE TABLE comment_likes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			comment_id TEXT NOT NULL,
			post_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE(user_id, comment_id)
		)
	`).Error
	require.NoError(t, err, "Failed to create comment_likes table")

	return db
}

// setupIntegrationRouter wires real repositories, services and handlers over
// the test database, with a header-based identity middleware standing in for
// JWT auth.
func setupIntegrationRouter(db *gorm.DB) (*gin.Engine, *client.MockStorageClient) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		if userIDStr := c.GetHeader("X-User-ID"); userIDStr != "" {
			if userID, err := uuid.Parse(userIDStr); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	})

	logger := zap.NewNop()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), logger)
	storage := client.NewMockStorageClient()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	txManager := repository.NewTxManager(db)

	userService := service.NewUserService(userRepo, storage,
		config.JWTConfig{Secret: "integration-secret", ExpiresIn: time.Hour}, logger)
	postService := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo,
		txManager, storage, nil, m, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, likeRepo, userRepo,
		txManager, nil, m, logger)
	likeService := service.NewLikeService(likeRepo, postRepo, commentRepo, userRepo,
		nil, m, logger)
	feedService := service.NewFeedService(postRepo, commentRepo, likeRepo, userRepo,
		nil, logger)

	authHandler := NewAuthHandler(userService, storage, logger)
	postHandler := NewPostHandler(postService, storage, logger)
	commentHandler := NewCommentHandler(commentService)
	likeHandler := NewLikeHandler(likeService)
	feedHandler := NewFeedHandler(feedService)

	api := router.Group("/api")
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authHandler.GetMe)
		auth.PATCH("/update-profile", authHandler.UpdateProfile)
	}
	posts := api.Group("/posts")
	{
		posts.POST("", postHandler.CreatePost)
		posts.GET("/:postId", postHandler.GetPost)
		posts.PATCH("/:postId", postHandler.EditPostContent)
		posts.DELETE("/:postId", postHandler.DeletePost)
		posts.POST("/:postId/images", postHandler.AddPostImages)
		posts.DELETE("/:postId/images", postHandler.DeletePostImages)
	}
	comments := api.Group("/comments")
	{
		comments.POST("/post/:postId", commentHandler.CreateComment)
		comments.GET("/post/:postId", commentHandler.GetPostComments)
		comments.GET("/:commentId", commentHandler.GetComment)
		comments.PATCH("/:commentId", commentHandler.EditComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
		comments.POST("/:commentId/replies", commentHandler.CreateReply)
		comments.GET("/:commentId/replies", commentHandler.GetCommentReplies)
	}
	likes := api.Group("/likes")
	{
		likes.POST("/post/:postId", likeHandler.TogglePostLike)
		likes.GET("/post/:postId", likeHandler.GetPostLikes)
		likes.GET("/post/:postId/count", likeHandler.GetPostLikesCount)
		likes.POST("/comment/:commentId", likeHandler.ToggleCommentLike)
		likes.GET("/comment/:commentId", likeHandler.GetCommentLikes)
		likes.GET("/comment/:commentId/count", likeHandler.GetCommentLikesCount)
	}
	feed := api.Group("/feed")
	{
		feed.GET("", feedHandler.ListPosts)
		feed.GET("/user/:userId", feedHandler.ListUserPosts)
		feed.GET("/:postId", feedHandler.GetPost)
	}

	return router, storage
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Email:     username + "@example.com",
		Username:  username,
		Name:      "Test " + username,
		Password:  "hashed",
	}
	require.NoError(t, db.Create(user).Error, "Failed to seed user")
	return user
}

// doJSON performs a JSON request as the given user
func doJSON(router *gin.Engine, method, path string, userID uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data field of a success envelope
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "Failed to decode envelope: %s", rec.Body.String())
	require.True(t, envelope.Success, "Expected success envelope: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out), "Failed to decode data: %s", rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var envelope response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "Failed to decode error: %s", rec.Body.String())
	return envelope.Error.Code
}

// createPostMultipart creates a post through the multipart endpoint with the
// given number of attached images
func createPostMultipart(t *testing.T, router *gin.Engine, userID uuid.UUID, content string, imageCount int) *dto.PostMutationResponse {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", content))
	for i := 0; i < imageCount; i++ {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="photo-%d.jpg"`, i))
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "Create post failed: %s", rec.Body.String())

	var result dto.PostMutationResponse
	decodeData(t, rec, &result)
	return &result
}

func TestIntegration_CreatePost_StagesImages(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, storage := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")

	result := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 2)

	assert.Equal(t, "Post created successfully", result.Message)
	assert.Len(t, result.Post.Images, 2)
	assert.Len(t, storage.UploadedKeys, 2)
	assert.Empty(t, storage.DeletedKeys)
}

func TestIntegration_LikeUnlikeFlow(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")
	liker := seedUser(t, db, "liker")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 0)
	likePath := "/api/likes/post/" + post.Post.PostID.String()

	// 좋아요 추가
	rec := doJSON(router, http.MethodPost, likePath, liker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggle dto.ToggleLikeResponse
	decodeData(t, rec, &toggle)
	assert.True(t, toggle.Added)
	require.NotNil(t, toggle.Like)
	assert.Equal(t, "liker", toggle.Like.User.Username)

	rec = doJSON(router, http.MethodGet, likePath+"/count", liker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count dto.LikeCountResponse
	decodeData(t, rec, &count)
	assert.Equal(t, int64(1), count.Count)

	// 좋아요 해제
	rec = doJSON(router, http.MethodPost, likePath, liker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	toggle = dto.ToggleLikeResponse{}
	decodeData(t, rec, &toggle)
	assert.False(t, toggle.Added)
	assert.Nil(t, toggle.Like)

	rec = doJSON(router, http.MethodGet, likePath+"/count", liker.ID, nil)
	decodeData(t, rec, &count)
	assert.Equal(t, int64(0), count.Count)

	// 해제 후 다시 추가 가능
	rec = doJSON(router, http.MethodPost, likePath, liker.ID, nil)
	decodeData(t, rec, &toggle)
	assert.True(t, toggle.Added)
}

func TestIntegration_PostDeleteCascade(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, storage := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	liker := seedUser(t, db, "liker")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 1)
	postID := post.Post.PostID.String()

	// 댓글과 답글
	rec := doJSON(router, http.MethodPost, "/api/comments/post/"+postID, commenter.ID,
		dto.CreateCommentRequest{Content: "First comment here!!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment dto.CommentMutationResponse
	decodeData(t, rec, &comment)

	rec = doJSON(router, http.MethodPost, "/api/comments/"+comment.Comment.CommentID.String()+"/replies", author.ID,
		dto.CreateCommentRequest{Content: "Nice reply!!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reply dto.CommentMutationResponse
	decodeData(t, rec, &reply)

	// 게시물/댓글/답글에 좋아요
	doJSON(router, http.MethodPost, "/api/likes/post/"+postID, liker.ID, nil)
	doJSON(router, http.MethodPost, "/api/likes/comment/"+comment.Comment.CommentID.String(), liker.ID, nil)
	doJSON(router, http.MethodPost, "/api/likes/comment/"+reply.Comment.CommentID.String(), liker.ID, nil)

	// 게시물 삭제
	rec = doJSON(router, http.MethodDelete, "/api/posts/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var deleted dto.DeletedPostResponse
	decodeData(t, rec, &deleted)
	assert.Equal(t, "Hello world, this is post one", deleted.DeletedPost.Content)

	// 관련 레코드가 모두 사라졌는지 확인
	var commentCount, postLikeCount, commentLikeCount int64
	db.Model(&domain.Comment{}).Where("post_id = ?", post.Post.PostID).Count(&commentCount)
	db.Model(&domain.PostLike{}).Where("post_id = ?", post.Post.PostID).Count(&postLikeCount)
	db.Model(&domain.CommentLike{}).Where("post_id = ?", post.Post.PostID).Count(&commentLikeCount)
	assert.Zero(t, commentCount, "comments must be cascaded")
	assert.Zero(t, postLikeCount, "post likes must be cascaded")
	assert.Zero(t, commentLikeCount, "comment likes must be cascaded")

	// 저장소 이미지도 제거됨
	assert.Len(t, storage.DeletedKeys, 1)

	rec = doJSON(router, http.MethodGet, "/api/posts/"+postID, author.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIntegration_CommentDeleteCascade_PostSurvives(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")
	liker := seedUser(t, db, "liker")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 0)
	postID := post.Post.PostID.String()

	rec := doJSON(router, http.MethodPost, "/api/comments/post/"+postID, author.ID,
		dto.CreateCommentRequest{Content: "First comment here!!"})
	var comment dto.CommentMutationResponse
	decodeData(t, rec, &comment)
	commentID := comment.Comment.CommentID.String()

	rec = doJSON(router, http.MethodPost, "/api/comments/"+commentID+"/replies", liker.ID,
		dto.CreateCommentRequest{Content: "Nice reply!!"})
	var reply dto.CommentMutationResponse
	decodeData(t, rec, &reply)

	doJSON(router, http.MethodPost, "/api/likes/comment/"+commentID, liker.ID, nil)
	doJSON(router, http.MethodPost, "/api/likes/comment/"+reply.Comment.CommentID.String(), author.ID, nil)

	rec = doJSON(router, http.MethodDelete, "/api/comments/"+commentID, author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// 답글과 모든 댓글 좋아요가 사라짐
	var commentCount, commentLikeCount int64
	db.Model(&domain.Comment{}).Where("post_id = ?", post.Post.PostID).Count(&commentCount)
	db.Model(&domain.CommentLike{}).Where("post_id = ?", post.Post.PostID).Count(&commentLikeCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, commentLikeCount)

	// 게시물은 그대로
	rec = doJSON(router, http.MethodGet, "/api/posts/"+postID, author.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIntegration_ReplyToReplyBecomesSibling(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 0)

	rec := doJSON(router, http.MethodPost, "/api/comments/post/"+post.Post.PostID.String(), author.ID,
		dto.CreateCommentRequest{Content: "First comment here!!"})
	var comment dto.CommentMutationResponse
	decodeData(t, rec, &comment)

	rec = doJSON(router, http.MethodPost, "/api/comments/"+comment.Comment.CommentID.String()+"/replies", author.ID,
		dto.CreateCommentRequest{Content: "Nice reply!!"})
	var reply dto.CommentMutationResponse
	decodeData(t, rec, &reply)
	assert.Equal(t, post.Post.PostID, reply.Comment.PostID, "reply inherits the parent's post")

	// 답글의 답글은 원래 부모 밑의 형제로 평탄화됨
	rec = doJSON(router, http.MethodPost, "/api/comments/"+reply.Comment.CommentID.String()+"/replies", author.ID,
		dto.CreateCommentRequest{Content: "Nested reply!!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var nested dto.CommentMutationResponse
	decodeData(t, rec, &nested)
	require.NotNil(t, nested.Comment.ParentCommentID)
	assert.Equal(t, comment.Comment.CommentID, *nested.Comment.ParentCommentID)
	assert.Equal(t, post.Post.PostID, nested.Comment.PostID)

	// 두 답글 모두 최상위 댓글의 직접 답글로 조회됨
	rec = doJSON(router, http.MethodGet, "/api/comments/"+comment.Comment.CommentID.String()+"/replies", author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var replies dto.ReplyListResponse
	decodeData(t, rec, &replies)
	assert.Len(t, replies.Replies, 2)
}

func TestIntegration_EditPost_AuthorOnly(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 0)
	path := "/api/posts/" + post.Post.PostID.String()

	rec := doJSON(router, http.MethodPatch, path, other.ID,
		dto.EditPostContentRequest{Content: "Hijacked content here"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrCodeForbidden, errorCode(t, rec))

	rec = doJSON(router, http.MethodPatch, path, author.ID,
		dto.EditPostContentRequest{Content: "Edited content right here"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited dto.PostMutationResponse
	decodeData(t, rec, &edited)
	assert.Equal(t, "Edited content right here", edited.Post.Content)
}

func TestIntegration_Feed_PreviewsAndTotals(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 0)
	postID := post.Post.PostID.String()

	// 좋아요 4개, 댓글 3개
	for i := 0; i < 4; i++ {
		liker := seedUser(t, db, fmt.Sprintf("liker%d", i))
		rec := doJSON(router, http.MethodPost, "/api/likes/post/"+postID, liker.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	for i := 0; i < 3; i++ {
		rec := doJSON(router, http.MethodPost, "/api/comments/post/"+postID, author.ID,
			dto.CreateCommentRequest{Content: fmt.Sprintf("Comment number %d here!!", i)})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// 피드 목록: 좋아요 3개 / 댓글 2개 미리보기, 합계는 전체
	rec := doJSON(router, http.MethodGet, "/api/feed", author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list dto.FeedListResponse
	decodeData(t, rec, &list)
	require.Len(t, list.Posts, 1)
	assert.Len(t, list.Posts[0].Likes, 3)
	assert.Len(t, list.Posts[0].Comments, 2)
	assert.Equal(t, int64(4), list.Posts[0].TotalLikes)
	assert.Equal(t, int64(3), list.Posts[0].TotalComments)
	assert.Equal(t, "author", list.Posts[0].User.Username)
	assert.Equal(t, int64(1), list.TotalCount)

	// 단건 조회: 댓글 미리보기가 3개로 넓어짐
	rec = doJSON(router, http.MethodGet, "/api/feed/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var single dto.FeedPostResponse
	decodeData(t, rec, &single)
	assert.Len(t, single.Likes, 3)
	assert.Len(t, single.Comments, 3)
	assert.Equal(t, int64(4), single.TotalLikes)
}

func TestIntegration_UpdateProfile(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, storage := setupIntegrationRouter(db)
	user := seedUser(t, db, "author")

	patchProfile := func(name string, withImage bool) *httptest.ResponseRecorder {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		if name != "" {
			require.NoError(t, writer.WriteField("name", name))
		}
		if withImage {
			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.jpg"`)
			header.Set("Content-Type", "image/jpeg")
			part, err := writer.CreatePart(header)
			require.NoError(t, err)
			part.Write([]byte("fake image bytes"))
		}
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPatch, "/api/auth/update-profile", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("X-User-ID", user.ID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := patchProfile("Renamed Author", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result dto.UserMutationResponse
	decodeData(t, rec, &result)
	assert.Equal(t, "Renamed Author", result.User.Name)
	assert.Equal(t, "author", result.User.Username)
	assert.NotEmpty(t, result.User.Image)
	require.Len(t, storage.UploadedKeys, 1)
	firstImage := result.User.Image

	// 이미지를 교체하면 이전 객체가 제거됨
	rec = patchProfile("", true)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &result)
	assert.Equal(t, "Renamed Author", result.User.Name)
	assert.NotEqual(t, firstImage, result.User.Image)
	assert.Contains(t, storage.DeletedKeys, firstImage)

	// 피드의 작성자 미리보기에 새 이름이 반영됨
	post := createPostMultipart(t, router, user.ID, "Hello world, this is post one", 0)
	rec = doJSON(router, http.MethodGet, "/api/feed/"+post.Post.PostID.String(), user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var single dto.FeedPostResponse
	decodeData(t, rec, &single)
	assert.Equal(t, "Renamed Author", single.User.Name)
}

func TestIntegration_Unauthenticated(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, _ := setupIntegrationRouter(db)

	rec := doJSON(router, http.MethodDelete, "/api/posts/"+uuid.New().String(), uuid.Nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.ErrCodeUnauthorized, errorCode(t, rec))
}

func TestIntegration_AddImages_CapExclusive(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router, storage := setupIntegrationRouter(db)
	author := seedUser(t, db, "author")

	post := createPostMultipart(t, router, author.ID, "Hello world, this is post one", 8)
	path := "/api/posts/" + post.Post.PostID.String() + "/images"

	addImages := func(n int) *httptest.ResponseRecorder {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for i := 0; i < n; i++ {
			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="extra-%d.jpg"`, i))
			header.Set("Content-Type", "image/jpeg")
			part, err := writer.CreatePart(header)
			require.NoError(t, err)
			part.Write([]byte("fake image bytes"))
		}
		require.NoError(t, writer.Close())
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("X-User-ID", author.ID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// 8장 + 1장 = 9장: 허용
	rec := addImages(1)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result dto.PostMutationResponse
	decodeData(t, rec, &result)
	assert.Len(t, result.Post.Images, 9)

	// 9장 + 1장 = 10장: 경계에서 거부, 스테이징은 정리됨
	stagedBefore := len(storage.DeletedKeys)
	rec = addImages(1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.ErrCodeValidation, errorCode(t, rec))
	assert.Equal(t, stagedBefore+1, len(storage.DeletedKeys), "rejected staged image must be cleaned up")
}

package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"postapi/logger"
	"postapi/models"
	"postapi/services"

	"github.com/gin-gonic/gin"
)

// PostStore is the set of repository operations the controller drives.
type PostStore interface {
	List(ctx context.Context, isPublished bool, limit int) ([]models.Post, error)
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

type PostController struct {
	posts      PostStore
	retryAfter time.Duration
}

func NewPostController(posts PostStore, retryAfter time.Duration) *PostController {
	return &PostController{
		posts:      posts,
		retryAfter: retryAfter,
	}
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param is_published query bool false "Publication state to match" default(true)
// @Param limit query int false "Maximum number of posts" default(5)
// @Success 200 {array} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	var query models.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	isPublished, limit := query.Resolve()
	posts, err := pc.posts.List(c.Request.Context(), isPublished, limit)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.CreatePostRequest true "New post"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.posts.Create(c.Request.Context(), &req)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := pc.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Patch a post
// @Description Only fields present in the body are changed.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.posts.Update(c.Request.Context(), id, &req)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := pc.posts.Delete(c.Request.Context(), id)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// parseID accepts any positive integer. Ids past the int4 range of posts.id
// cannot exist, so they are answered with 404 without reaching storage.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	if id > math.MaxInt32 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return 0, false
	}
	return uint(id), true
}

func (pc *PostController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, services.ErrInvalidLimit):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must not be negative"})
	case errors.Is(err, services.ErrInvalidPost):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post rejected by storage"})
	case errors.Is(err, services.ErrPostConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Post conflicts with an existing post"})
	case errors.Is(err, services.ErrStorageUnavailable):
		logger.FromContext(c.Request.Context()).Warn("Storage unavailable", "path", c.FullPath(), "error", err)
		if pc.retryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(pc.retryAfter.Seconds()))))
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
	default:
		logger.FromContext(c.Request.Context()).Error("Post operation failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

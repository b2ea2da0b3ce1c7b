package services

import (
	"context"

	"postapi/logger"
	"postapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostNotifier is told about every committed change to a post.
type PostNotifier interface {
	Notify(eventType string, post models.Post)
}

type PostService struct {
	db       *gorm.DB
	notifier PostNotifier
	maxLimit int
}

func NewPostService(db *gorm.DB, notifier PostNotifier, maxLimit int) *PostService {
	return &PostService{
		db:       db,
		notifier: notifier,
		maxLimit: maxLimit,
	}
}

// List returns up to limit posts whose published flag equals isPublished.
// limit is clamped to the configured maximum.
func (s *PostService) List(ctx context.Context, isPublished bool, limit int) ([]models.Post, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}

	posts := []models.Post{}
	if limit == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).
		Where("published = ?", isPublished).
		Order("id").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translate("list posts", err)
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if req.Title == nil || req.Body == nil {
		return nil, ErrInvalidPost
	}
	post := &models.Post{
		Title: *req.Title,
		Body:  *req.Body,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, translate("create post", err)
	}

	logger.FromContext(ctx).Info("Post created", "post_id", post.ID)
	s.notify(models.PostCreated, post)
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate("get post", err)
	}
	return &post, nil
}

// Update applies only the fields present in req and returns the resulting row.
func (s *PostService) Update(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return s.GetByID(ctx, id)
	}

	var post models.Post
	result := s.db.WithContext(ctx).
		Model(&post).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, translate("update post", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, translate("update post", gorm.ErrRecordNotFound)
	}

	logger.FromContext(ctx).Info("Post updated", "post_id", post.ID, "fields", len(changes))
	s.notify(models.PostUpdated, &post)
	return &post, nil
}

// Delete removes the post and returns its state as of deletion.
func (s *PostService) Delete(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	result := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&post)
	if result.Error != nil {
		return nil, translate("delete post", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, translate("delete post", gorm.ErrRecordNotFound)
	}

	logger.FromContext(ctx).Info("Post deleted", "post_id", post.ID)
	s.notify(models.PostDeleted, &post)
	return &post, nil
}

func (s *PostService) notify(eventType string, post *models.Post) {
	if s.notifier != nil {
		s.notifier.Notify(eventType, *post)
	}
}

package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// DefaultPageSize is the page size applied when a listing request carries no
// explicit limit.
const DefaultPageSize = 10

// MaxPageSize caps the limit a client may request in one page.
const MaxPageSize = 100

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	// Reload associations so the response can render author and group.
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(post, post.ID).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Group").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts in publication order, oldest first, plus the
// total count for the pagination envelope.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("list", "posts")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order("pub_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update persists mutable post fields. pub_date and user_id stay fixed for the
// lifetime of the row.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"image":    post.Image,
			"group_id": post.GroupID,
		}).Error
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)

	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(post, post.ID).Error
}

// Delete removes the post row; its comments go with it through the FK cascade.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

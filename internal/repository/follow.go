package repository

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	ListByUser(ctx context.Context, userID uint, search string, limit, offset int) ([]*models.Follow, int64, error)
	Exists(ctx context.Context, userID, followingID uint) (bool, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow edge. The schema constraints are the authoritative
// guard: two concurrent inserts for the same pair race past any pre-check, but
// only one survives the unique index. Constraint violations come back as
// validation errors so the API reports them as bad requests, not faults.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return models.NewValidationError("you already follow this user")
		case errors.Is(err, gorm.ErrCheckConstraintViolated):
			return models.NewValidationError("you cannot follow yourself")
		default:
			return models.NewInternalError(err)
		}
	}

	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Following").
		First(follow, follow.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByUser returns one page of the user's follow edges, newest first, plus
// the total count for the pagination envelope. A non-empty search term filters
// by the followed user's username, case-insensitively.
func (r *followRepository) ListByUser(ctx context.Context, userID uint, search string, limit, offset int) ([]*models.Follow, int64, error) {
	defer observability.TrackQuery("list", "follows")()

	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follows.user_id = ?", userID)
		if search != "" {
			q = q.
				Joins("JOIN users ON users.id = follows.following_id").
				Where("users.username ILIKE ?", "%"+search+"%")
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var follows []*models.Follow
	err := scope().
		Preload("User").
		Preload("Following").
		Order("follows.created_at DESC, follows.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return follows, total, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

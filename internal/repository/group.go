package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context, limit, offset int) ([]*models.Group, error)
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return err
	}
	cache.InvalidateGroups(ctx)
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(id), &group, cache.GroupTTL, func() error {
		return r.db.WithContext(ctx).First(&group, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns groups ordered by ID. Groups are created out-of-band (seeded or
// admin-managed), so the default first page is a good cache candidate;
// non-default pagination bypasses the cache to keep the key space small.
func (r *groupRepository) List(ctx context.Context, limit, offset int) ([]*models.Group, error) {
	var groups []*models.Group

	fetch := func() error {
		return r.db.WithContext(ctx).
			Order("id ASC").
			Limit(limit).
			Offset(offset).
			Find(&groups).Error
	}

	if offset == 0 && limit == DefaultPageSize {
		if err := cache.Aside(ctx, cache.GroupListKey, &groups, cache.GroupTTL, fetch); err != nil {
			return nil, err
		}
		return groups, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return groups, nil
}

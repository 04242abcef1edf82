package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type CreateFollowInput struct {
	UserID            uint
	FollowingUsername string
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ListFollows returns one page of the caller's follow edges plus the total
// count. search filters by the followed user's username.
func (s *FollowService) ListFollows(ctx context.Context, userID uint, search string, limit, offset int) ([]*models.Follow, int64, error) {
	return s.followRepo.ListByUser(ctx, userID, search, limit, offset)
}

// CreateFollow subscribes the caller to the named user. The pre-checks give
// friendly messages; the unique index and CHECK constraint behind
// followRepo.Create are what actually hold under concurrency.
func (s *FollowService) CreateFollow(ctx context.Context, in CreateFollowInput) (*models.Follow, error) {
	if in.FollowingUsername == "" {
		return nil, models.NewValidationError("following is required")
	}

	target, err := s.userRepo.GetByUsername(ctx, in.FollowingUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.FollowingUsername)
		}
		return nil, models.NewInternalError(err)
	}

	if target.ID == in.UserID {
		return nil, models.NewValidationError("you cannot follow yourself")
	}

	exists, err := s.followRepo.Exists(ctx, in.UserID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("you already follow this user")
	}

	follow := &models.Follow{
		UserID:      in.UserID,
		FollowingID: target.ID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

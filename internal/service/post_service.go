package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

const maxPostTextLen = 40000

// ImageStore abstracts data-URI image persistence for posts.
type ImageStore interface {
	SaveDataURI(ctx context.Context, dataURI string) (string, error)
	Remove(relPath string)
}

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	images    ImageStore
}

type CreatePostInput struct {
	UserID  uint
	Text    string
	Image   string // data URI, optional
	GroupID *uint
}

// UpdatePostInput carries a partial update. Nil pointers mean "leave as is";
// Full switches to replace semantics, where nil Image/GroupID clear the field
// and Text is mandatory.
type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Text    *string
	Image   *string // data URI
	GroupID *uint
	Full    bool
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	images ImageStore,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		images:    images,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("text is required")
	}
	if len(in.Text) > maxPostTextLen {
		return nil, models.NewValidationError("text too long")
	}

	if in.GroupID != nil {
		if err := s.checkGroup(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:    in.Text,
		UserID:  in.UserID,
		GroupID: in.GroupID,
	}

	if in.Image != "" {
		path, err := s.images.SaveDataURI(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = path
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	posts, total, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewPermissionDeniedError("you can only modify your own posts")
	}

	if in.Full && in.Text == nil {
		return nil, models.NewValidationError("text is required")
	}
	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewValidationError("text is required")
		}
		if len(*in.Text) > maxPostTextLen {
			return nil, models.NewValidationError("text too long")
		}
		post.Text = *in.Text
	}

	if in.GroupID != nil {
		if err := s.checkGroup(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
	} else if in.Full {
		post.GroupID = nil
	}

	oldImage := post.Image
	switch {
	case in.Image != nil && *in.Image != "":
		path, err := s.images.SaveDataURI(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = path
	case in.Full:
		post.Image = ""
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if post.Image != oldImage {
		s.images.Remove(oldImage)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		return models.NewPermissionDeniedError("you can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return models.NewInternalError(err)
	}
	s.images.Remove(post.Image)
	return nil
}

// checkGroup confirms the referenced group exists. A bad reference is a
// validation problem with the request body, not a missing resource.
func (s *PostService) checkGroup(ctx context.Context, groupID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewValidationError("group does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context, int, int) ([]*models.Post, int64, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context, _, _ int) ([]*models.Post, int64, error) { return nil, 0, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn    func(context.Context, *models.Group) error
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	getBySlugFn func(context.Context, string) (*models.Group, error)
	listFn      func(context.Context, int, int) ([]*models.Group, error)
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Group, error) {
	return s.listFn(ctx, limit, offset)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:    func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn:   func(_ context.Context, _ uint) (*models.Group, error) { return &models.Group{}, nil },
		getBySlugFn: func(_ context.Context, _ string) (*models.Group, error) { return &models.Group{}, nil },
		listFn:      func(_ context.Context, _, _ int) ([]*models.Group, error) { return nil, nil },
	}
}

// imageStoreStub is a stub for ImageStore.
type imageStoreStub struct {
	saveFn  func(context.Context, string) (string, error)
	removed []string
}

func (s *imageStoreStub) SaveDataURI(ctx context.Context, dataURI string) (string, error) {
	return s.saveFn(ctx, dataURI)
}
func (s *imageStoreStub) Remove(relPath string) {
	s.removed = append(s.removed, relPath)
}

func noopImageStore() *imageStoreStub {
	return &imageStoreStub{
		saveFn: func(_ context.Context, _ string) (string, error) { return "posts/stub.png", nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertPermissionDeniedError asserts that err is an AppError with code PERMISSION_DENIED.
func assertPermissionDeniedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopGroupRepo(), noopImageStore())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopGroupRepo(), noopImageStore())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: strings.Repeat("x", maxPostTextLen+1)})
		assertValidationError(t, err)
	})

	t.Run("unknown group", func(t *testing.T) {
		t.Parallel()
		groupRepo := noopGroupRepo()
		groupRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Group, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewPostService(noopPostRepo(), groupRepo, noopImageStore())
		groupID := uint(99)
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "hi", GroupID: &groupID})
		assertValidationError(t, err)
	})

	t.Run("bad image propagates", func(t *testing.T) {
		t.Parallel()
		images := noopImageStore()
		images.saveFn = func(_ context.Context, _ string) (string, error) {
			return "", models.NewValidationError("image must be a data URI")
		}
		svc := NewPostService(noopPostRepo(), noopGroupRepo(), images)
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "hi", Image: "garbage"})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		return nil
	}

	svc := NewPostService(postRepo, noopGroupRepo(), noopImageStore())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1,
		Text:   "hello world",
		Image:  "data:image/png;base64,xxxx",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, uint(1), post.UserID)
	assert.Equal(t, "posts/stub.png", post.Image)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewPostService(postRepo, noopGroupRepo(), noopImageStore())
	_, err := svc.GetPost(context.Background(), 404)
	assertNotFoundError(t, err)
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	owned := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Text: "original"}, nil
		}
		return repo
	}

	t.Run("non-owner is denied", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(owned(), noopGroupRepo(), noopImageStore())
		text := "new"
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 2, PostID: 1, Text: &text})
		assertPermissionDeniedError(t, err)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		t.Parallel()
		repo := owned()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			gid := uint(3)
			return &models.Post{ID: id, UserID: 1, Text: "original", GroupID: &gid, Image: "posts/a.png"}, nil
		}
		svc := NewPostService(repo, noopGroupRepo(), noopImageStore())
		text := "edited"
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "edited", post.Text)
		require.NotNil(t, post.GroupID)
		assert.Equal(t, uint(3), *post.GroupID)
		assert.Equal(t, "posts/a.png", post.Image)
	})

	t.Run("full update clears absent fields", func(t *testing.T) {
		t.Parallel()
		repo := owned()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			gid := uint(3)
			return &models.Post{ID: id, UserID: 1, Text: "original", GroupID: &gid, Image: "posts/a.png"}, nil
		}
		images := noopImageStore()
		svc := NewPostService(repo, noopGroupRepo(), images)
		text := "replaced"
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Text: &text, Full: true})
		require.NoError(t, err)
		assert.Nil(t, post.GroupID)
		assert.Empty(t, post.Image)
		assert.Equal(t, []string{"posts/a.png"}, images.removed)
	})

	t.Run("full update without text is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(owned(), noopGroupRepo(), noopImageStore())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Full: true})
		assertValidationError(t, err)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		deleted := uint(0)
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Image: "posts/a.png"}, nil
		}
		repo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		images := noopImageStore()
		svc := NewPostService(repo, noopGroupRepo(), images)
		err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(5), deleted)
		assert.Equal(t, []string{"posts/a.png"}, images.removed)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		svc := NewPostService(repo, noopGroupRepo(), noopImageStore())
		err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 5})
		assertPermissionDeniedError(t, err)
	})
}

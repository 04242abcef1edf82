package server

import (
	"context"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// attachOptionalIdentity records a verified caller identity on public reads so
// request logs can attribute them. Anonymous reads pass through untouched.
func (s *Server) attachOptionalIdentity(c *fiber.Ctx) {
	if uid, ok := s.optionalUserID(c); ok {
		c.Locals("userID", uid)
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, uid))
	}
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	s.attachOptionalIdentity(c)

	pg := parsePagination(c, repository.DefaultPageSize)

	posts, total, err := s.postService.ListPosts(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	next, previous := pageLinks(c, pg, total)
	return c.JSON(paginatedResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  toPostResponses(posts),
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	s.attachOptionalIdentity(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toPostResponse(post))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
		Group *uint  `json:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  currentUserID(c),
		Text:    req.Text,
		Image:   req.Image,
		GroupID: req.Group,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toPostResponse(post))
}

// UpdatePost handles PUT and PATCH /api/posts/:id.  PUT replaces the post,
// PATCH applies only the fields present in the body.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text  *string `json:"text"`
		Image *string `json:"image"`
		Group *uint   `json:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Text:    req.Text,
		Image:   req.Image,
		GroupID: req.Group,
		Full:    c.Method() == fiber.MethodPut,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toPostResponse(post))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFollows handles GET /api/follows.  Only the caller's own subscriptions
// are visible; ?search= filters by the followed user's username.
func (s *Server) GetFollows(c *fiber.Ctx) error {
	pg := parsePagination(c, repository.DefaultPageSize)

	follows, total, err := s.followService.ListFollows(c.Context(), currentUserID(c), c.Query("search"), pg.Limit, pg.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	next, previous := pageLinks(c, pg, total)
	return c.JSON(paginatedResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  toFollowResponses(follows),
	})
}

// CreateFollow handles POST /api/follows
func (s *Server) CreateFollow(c *fiber.Ctx) error {
	var req struct {
		Following string `json:"following"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	follow, err := s.followService.CreateFollow(c.Context(), service.CreateFollowInput{
		UserID:            currentUserID(c),
		FollowingUsername: req.Following,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toFollowResponse(follow))
}

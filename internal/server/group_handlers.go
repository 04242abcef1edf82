package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	pg := parsePagination(c, repository.DefaultPageSize)

	groups, err := s.groupRepo.List(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(toGroupResponses(groups))
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	group, err := s.groupRepo.GetByID(c.Context(), groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Group", groupID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(toGroupResponse(group))
}

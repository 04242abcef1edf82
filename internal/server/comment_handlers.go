package server

import (
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pg := parsePagination(c, repository.DefaultPageSize)

	comments, total, err := s.commentService.ListComments(c.Context(), postID, pg.Limit, pg.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	next, previous := pageLinks(c, pg, total)
	return c.JSON(paginatedResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  toCommentResponses(comments),
	})
}

// GetComment handles GET /api/posts/:id/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), postID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toCommentResponse(comment))
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toCommentResponse(comment))
}

// UpdateComment handles PUT and PATCH /api/posts/:id/comments/:commentId.
// A PATCH without a text field is a no-op that returns the current comment.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text *string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Text == nil && c.Method() == fiber.MethodPatch {
		comment, getErr := s.commentService.GetComment(c.Context(), postID, commentID)
		if getErr != nil {
			return respondServiceError(c, getErr)
		}
		return c.JSON(toCommentResponse(comment))
	}

	var text string
	if req.Text != nil {
		text = *req.Text
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
		Text:      text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toCommentResponse(comment))
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

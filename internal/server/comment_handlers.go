package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), id, caller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id. Only the author may edit.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		CommentID: id,
		Caller:    caller(c),
		Content:   req.Content,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteComment handles DELETE /api/comments/:id. Only the author may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		CommentID: id,
		Caller:    caller(c),
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetCommentLikeStatus handles PUT /api/comments/:id/like-status
// @Summary Set the caller's reaction to a comment
// @Tags comments
// @Accept json
// @Param id path int true "Comment ID"
// @Param request body object{likeStatus=string} true "None, Like or Dislike"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id}/like-status [put]
func (s *Server) SetCommentLikeStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		LikeStatus string `json:"likeStatus"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.reactionService.SetReaction(c.Context(), service.SetReactionInput{
		Subject:    models.SubjectComment,
		SubjectID:  id,
		Caller:     caller(c),
		LikeStatus: req.LikeStatus,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Param searchLoginTerm query string false "Filter by login substring"
// @Param searchEmailTerm query string false "Filter by email substring"
// @Success 200 {object} models.Page[models.User]
// @Security BasicAuth
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	q := parseListQuery(c)
	page, err := s.userService.ListUsers(c.Context(), service.ListUsersInput{
		SearchLoginTerm: c.Query("searchLoginTerm"),
		SearchEmailTerm: c.Query("searchEmailTerm"),
		SortBy:          q.SortBy,
		SortDirection:   q.SortDirection,
		Page:            q.Page,
		PageSize:        q.PageSize,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// CreateUser handles POST /api/users (admin-provisioned accounts)
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		Login:    req.Login,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

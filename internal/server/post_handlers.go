package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postBody struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           uint   `json:"blogId"`
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Param searchTitleTerm query string false "Filter by title substring"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortDirection query string false "asc or desc" default(desc)
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} models.Page[models.Post]
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	q := parseListQuery(c)
	page, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		SearchTitleTerm: c.Query("searchTitleTerm"),
		SortBy:          q.SortBy,
		SortDirection:   q.SortDirection,
		Page:            q.Page,
		PageSize:        q.PageSize,
		Viewer:          caller(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
// @Summary Get one post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, caller(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		BlogID:           req.BlogID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:           id,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		BlogID:           req.BlogID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPostLikeStatus handles PUT /api/posts/:id/like-status
// @Summary Set the caller's reaction to a post
// @Tags posts
// @Accept json
// @Param id path int true "Post ID"
// @Param request body object{likeStatus=string} true "None, Like or Dislike"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like-status [put]
func (s *Server) SetPostLikeStatus(c *fiber.Ctx) error {
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
		Subject:    models.SubjectPost,
		SubjectID:  id,
		Caller:     caller(c),
		LikeStatus: req.LikeStatus,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPostComments handles GET /api/posts/:id/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	q := parseListQuery(c)
	page, err := s.commentService.ListComments(c.Context(), service.ListCommentsInput{
		PostID:        id,
		SortBy:        q.SortBy,
		SortDirection: q.SortDirection,
		Page:          q.Page,
		PageSize:      q.PageSize,
		Viewer:        caller(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// CreatePostComment handles POST /api/posts/:id/comments
func (s *Server) CreatePostComment(c *fiber.Ctx) error {
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

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		PostID:  id,
		Caller:  caller(c),
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

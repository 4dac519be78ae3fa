package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type blogBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

// GetBlogs handles GET /api/blogs
// @Summary List blogs
// @Tags blogs
// @Produce json
// @Param searchNameTerm query string false "Filter by name substring"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortDirection query string false "asc or desc" default(desc)
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} models.Page[models.Blog]
// @Router /blogs [get]
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	q := parseListQuery(c)
	page, err := s.blogService.ListBlogs(c.Context(), service.ListBlogsInput{
		SearchNameTerm: c.Query("searchNameTerm"),
		SortBy:         q.SortBy,
		SortDirection:  q.SortDirection,
		Page:           q.Page,
		PageSize:       q.PageSize,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetBlog handles GET /api/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// CreateBlog handles POST /api/blogs
// @Summary Create blog
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body blogBody true "Blog fields"
// @Success 201 {object} models.Blog
// @Failure 400 {object} models.ErrorResponse
// @Security BasicAuth
// @Router /blogs [post]
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req blogBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.CreateBlog(c.Context(), service.CreateBlogInput{
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlog handles PUT /api/blogs/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req blogBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.blogService.UpdateBlog(c.Context(), service.UpdateBlogInput{
		BlogID:      id,
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBlogPosts handles GET /api/blogs/:id/posts
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	q := parseListQuery(c)
	page, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		BlogID:        id,
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

// CreateBlogPost handles POST /api/blogs/:id/posts
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
		Content          string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		BlogID:           id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

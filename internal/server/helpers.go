package server

import (
	"errors"
	"strings"
	"unicode"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// ListQuery holds the parsed paging/sorting query parameters shared by
// all list endpoints.
type ListQuery struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// parseListQuery extracts pageNumber/pageSize/sortBy/sortDirection with
// their defaults. Out-of-range values are normalized in the service layer.
func parseListQuery(c *fiber.Ctx) ListQuery {
	sortDirection := c.Query("sortDirection", "desc")
	if sortDirection != "asc" {
		sortDirection = "desc"
	}
	return ListQuery{
		Page:          c.QueryInt("pageNumber", 1),
		PageSize:      c.QueryInt("pageSize", 10),
		SortBy:        c.Query("sortBy", "createdAt"),
		SortDirection: sortDirection,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "blogId" -> "blog ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// caller returns the authenticated identity from request locals. The
// zero Identity means the request is anonymous.
func caller(c *fiber.Ctx) service.Identity {
	userID, _ := c.Locals("userID").(uint)
	login, _ := c.Locals("userLogin").(string)
	return service.Identity{UserID: userID, Login: login}
}

// respondServiceError maps a service-layer error onto the HTTP response.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

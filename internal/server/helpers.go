package server

import (
	"errors"
	"strings"
	"unicode"

	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

const (
	defaultPage        = 1
	defaultPageLimit   = 10
	maxPaginationLimit = 100
)

// parsePagination extracts page and limit query parameters. Out-of-range
// values fall back to the defaults rather than erroring.
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return Pagination{
		Page:  page,
		Limit: limit,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "videoId" -> "Invalid video ID", "commentId" -> "Invalid comment ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user set by AuthRequired.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "videoId" -> "video ID", "subscriberId" -> "subscriber ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		// Split camelCase prefix into words.
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

package models

import "github.com/gofiber/fiber/v2"

// Respond writes the standard success envelope. Every endpoint returns this
// shape; data may be nil for operations with no payload.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    true,
		"statusCode": status,
		"message":    message,
		"data":       data,
	})
}

// Page is the cross-cutting pagination envelope nested under data.
type Page struct {
	Docs        interface{} `json:"docs"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	TotalDocs   int64       `json:"totalDocs"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
}

// NewPage builds a Page from a doc slice and total count. Out-of-range pages
// yield an empty doc list with accurate totals rather than an error.
func NewPage(docs interface{}, page, limit int, total int64) *Page {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Page{
		Docs:        docs,
		Page:        page,
		TotalPages:  totalPages,
		TotalDocs:   total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

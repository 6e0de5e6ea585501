package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching the database schema.
const (
	MaxIDLen      = 64  // users.user_id / videos.video_id TEXT, bounded at the edge
	MaxTitleLen   = 200 // videos.title
	MaxCommentLen = 1000
	MaxTagLen     = 50
	MaxTags       = 20
	MaxPageSize   = 100
)

// idRe matches UUIDs and other url-safe identifiers.
var idRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that an identifier is well-formed. The field name is
// only used for the error message.
func ValidateID(id, field string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", field + " is required"
	}
	if len(id) > MaxIDLen {
		return "", field + " must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", field + " contains invalid characters"
	}
	return id, ""
}

// ValidatePagination parses page/limit query values with defaults,
// enforcing page >= 1 and 1 <= limit <= MaxPageSize.
func ValidatePagination(pageStr, limitStr string, defaultLimit int) (page, limit int, errMsg string) {
	page = 1
	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return 0, 0, "page must be a positive integer"
		}
		page = n
	}

	limit = defaultLimit
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return 0, 0, "limit must be a positive integer"
		}
		limit = n
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, ""
}

// ValidateTags trims and bounds a tag list.
func ValidateTags(tags []string) ([]string, string) {
	if len(tags) > MaxTags {
		return nil, "at most 20 tags are allowed"
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > MaxTagLen {
			return nil, "tags must be at most 50 characters"
		}
		out = append(out, tag)
	}
	return out, ""
}

// TruncateComment bounds comment bodies to the schema limit.
func TruncateComment(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > MaxCommentLen {
		body = body[:MaxCommentLen]
	}
	return body
}

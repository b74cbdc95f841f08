package server

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
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

// parseYearMonth reads the yearMonth query parameter ("YYYY-MM"). On failure
// it writes a 400 response and returns errResponseWritten.
func (s *Server) parseYearMonth(c *fiber.Ctx) (int, time.Month, error) {
	raw := c.Query("yearMonth")
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		_ = models.RespondWithError(c,
			models.NewValidationError(messages.Get("error.diary.invalid.month")))
		return 0, 0, errResponseWritten
	}
	return parsed.Year(), parsed.Month(), nil
}

// parseDeletedFlag reads the optional deleted query parameter, defaulting to N.
func (s *Server) parseDeletedFlag(c *fiber.Ctx) (models.YesOrNo, error) {
	raw := c.Query("deleted", string(models.No))
	flag := models.YesOrNo(strings.ToUpper(raw))
	if !flag.Valid() {
		_ = models.RespondWithError(c,
			models.NewValidationError(messages.Get("error.diary.deleted.flag")))
		return "", errResponseWritten
	}
	return flag, nil
}

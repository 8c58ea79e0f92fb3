package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/pkg"
)

// RequireContentType rejects requests whose body is not of the given media
// type with 415. Parameters such as charset are ignored.
func RequireContentType(mediaType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.ToLower(strings.TrimSpace(strings.Split(c.Get(fiber.HeaderContentType), ";")[0]))
		if contentType != mediaType {
			return pkg.ErrorResponse(c, errors.NewUnsupportedMediaTypeError("Content-Type must be "+mediaType))
		}
		return c.Next()
	}
}

package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// NoCacheHeaders disables client caching for sensitive endpoints
// (auth, attendance, chat) so stale tokens or statuses never stick
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// ShortCacheHeaders allows brief client caching for read-heavy
// listing endpoints (doctors, stats)
func ShortCacheHeaders(seconds int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set("Cache-Control", "private, max-age="+strconv.Itoa(seconds))
		}
		return c.Next()
	}
}

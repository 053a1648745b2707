package app

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NoStore stops browsers and proxies from caching pages that carry a CSRF token or
// echoed form values.
func NoStore(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Next()
}

// origin is the scheme and host the request came in on, used to build absolute callbacks.
func origin(c *fiber.Ctx) string {
	return strings.TrimRight(c.BaseURL(), "/")
}

package view

import (
	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

func RenderComponent(c *fiber.Ctx, status int, component templ.Component) error {
	c.Status(status).Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Context(), c)
}

// Redirect answers with a 302, and tells htmx clients where to go with HX-Location.
func Redirect(c *fiber.Ctx, location string) error {
	c.Set("HX-Location", location)
	return c.Redirect(location, fiber.StatusFound)
}

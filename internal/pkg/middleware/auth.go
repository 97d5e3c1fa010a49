package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to the login flow
// if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

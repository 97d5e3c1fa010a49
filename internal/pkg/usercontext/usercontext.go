package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/internal/pkg/policy"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// Viewer converts the request context into the pure policy viewer passed
// to every guard and predicate.
func Viewer(c *fiber.Ctx) policy.Viewer {
	ctx := GetUserContext(c)
	if !ctx.IsLoggedIn {
		return policy.Anonymous()
	}
	return policy.Viewer{
		ID:            ctx.UserID,
		Username:      ctx.Username,
		Authenticated: true,
	}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetUsername returns the current user's username, or empty string if not logged in
func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}

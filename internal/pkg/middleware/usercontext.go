package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/internal/pkg/session"
	"github.com/blogram/blogram/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request. Handlers never touch the session store for identity; they read
// the context (or the policy viewer derived from it) instead.
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := func() error {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		return anonymous()
	}

	sess, err := store.Get(c)
	if err != nil {
		return anonymous()
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		return anonymous()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
	})

	return c.Next()
}

package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/blogram/blogram/app/controllers"
	"github.com/blogram/blogram/internal/pkg/env"
	"github.com/blogram/blogram/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/", controllers.HandleHome)

	// Auth
	group.Get("/auth/login", controllers.HandleAuthLogin)
	group.Post("/auth/login", controllers.HandleAuthLogin)

	// Posts
	group.Get("/posts/create", middleware.RequireAuth, controllers.HandlePostCreate)
	group.Post("/posts/create", middleware.RequireAuth, controllers.HandlePostCreate)
	group.Get("/posts/:post_id", controllers.HandlePostDetail)
	group.Get("/posts/:post_id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	group.Post("/posts/:post_id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	group.Post("/posts/:post_id/delete", middleware.RequireAuth, controllers.HandlePostDelete)

	// Comments
	group.Post("/posts/:post_id/comment", middleware.RequireAuth, controllers.HandleCommentCreate)
	group.Get("/posts/:post_id/edit_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentEdit)
	group.Post("/posts/:post_id/edit_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentEdit)
	group.Post("/posts/:post_id/delete_comment/:comment_id", middleware.RequireAuth, controllers.HandleCommentDelete)

	// Profile
	group.Get("/profile/edit", middleware.RequireAuth, controllers.HandleProfileEdit)
	group.Post("/profile/edit", middleware.RequireAuth, controllers.HandleProfileEdit)
}

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/database"
	"github.com/blogram/blogram/internal/pkg/middleware"
	"github.com/blogram/blogram/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// repositories behind the controllers
	repository.InitializeFactory(database.GetDB())

	// Resolve the viewer for every request before anything else runs.
	app.Use(middleware.UserContextMiddleware)

	// CSRF routes first: /posts/create and /profile/edit must win over
	// the /posts/:post_id and /profile/:username patterns.
	h.registerCSRFProtectedRoutes(app)
	h.registerPublicRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

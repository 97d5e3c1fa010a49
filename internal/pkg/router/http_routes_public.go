package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Category and profile feeds
	app.Get("/category/:slug", controllers.HandleCategoryPosts)
	app.Get("/profile/:username", controllers.HandleProfile)

	// Static pages
	app.Get("/pages/about", controllers.HandleAbout)
	app.Get("/pages/rules", controllers.HandleRules)

	// Auth
	app.Get("/auth/logout", controllers.HandleAuthLogout)
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleAbout renders the static about page
func HandleAbout(c *fiber.Ctx) error {
	return c.Render("pages/about", layoutData(c, "About"), "layouts/main")
}

// HandleRules renders the static rules page
func HandleRules(c *fiber.Ctx) error {
	return c.Render("pages/rules", layoutData(c, "Rules"), "layouts/main")
}

package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/session"
	"github.com/blogram/blogram/internal/pkg/usercontext"
)

// HandleAuthLogin establishes a session. Login failures stay deliberately
// vague so usernames cannot be probed.
func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{"type": "error", "message": "Wrong username or password"}

		user, err := repository.GetGlobalRepositories().User.GetByUsername(c.FormValue("username"))
		if err != nil {
			return flash.WithError(c, fm).Redirect("/auth/login")
		}
		if !user.CheckPassword(c.FormValue("password")) {
			return flash.WithError(c, fm).Redirect("/auth/login")
		}

		if err := setSessionUser(c, user); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)
			return flash.WithError(c, fm).Redirect("/auth/login")
		}

		return flash.WithSuccess(c, fiber.Map{
			"type":    "success",
			"message": "Welcome back, " + user.Username + "!",
		}).Redirect("/")
	}

	return c.Render("auth/login", layoutData(c, "Log in"), "layouts/main")
}

// HandleAuthLogout terminates the session and renders a confirmation view.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}

	data := layoutData(c, "Logged out")
	data["IsLoggedIn"] = false
	data["Username"] = ""

	return c.Render("auth/logged_out", data, "layouts/main")
}

// setSessionUser writes the identity of the given user into the session.
func setSessionUser(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Username)

	return sess.Save()
}

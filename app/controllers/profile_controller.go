package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/usercontext"
)

// HandleProfile renders a user's page. The owner sees all own posts,
// including unpublished and scheduled ones; everyone else gets the
// published-only feed.
func HandleProfile(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	profile, err := repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	isOwner := viewer.Authenticated && viewer.ID == profile.ID

	page, err := repos.Post.Feed(repository.PostFeedOptions{
		PublishedOnly:     !isOwner,
		WithRelations:     true,
		WithCommentCounts: true,
		AuthorID:          &profile.ID,
		Page:              pageParam(c),
	})
	if err != nil {
		return renderServerError(c)
	}

	data := layoutData(c, profile.Username)
	data["Profile"] = profile
	data["IsOwner"] = isOwner
	data["Posts"] = postsToViews(page.Posts)
	data["Pagination"] = paginationView(page)

	return c.Render("blog/profile", data, "layouts/main")
}

// HandleProfileEdit edits the current viewer's own profile. The target is
// never taken from the route.
func HandleProfileEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	user, err := repos.User.GetByID(viewer.ID)
	if err != nil {
		return renderServerError(c)
	}

	if c.Method() == fiber.MethodPost {
		user.Username = c.FormValue("username")
		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")
		user.Email = c.FormValue("email")

		if err := user.Validate(); err != nil {
			data := layoutData(c, "Edit profile")
			data["User"] = user
			data["Errors"] = validationMessages(err)
			return c.Status(fiber.StatusUnprocessableEntity).Render("blog/user", data, "layouts/main")
		}

		if err := repos.User.Update(user); err != nil {
			// Most likely a taken username or email.
			data := layoutData(c, "Edit profile")
			data["User"] = user
			data["Errors"] = map[string]string{"Username": "Username or email is already taken."}
			return c.Status(fiber.StatusUnprocessableEntity).Render("blog/user", data, "layouts/main")
		}

		// Keep the session in sync with the possibly renamed account.
		if err := setSessionUser(c, user); err != nil {
			return renderServerError(c)
		}

		flash.WithSuccess(c, fiber.Map{"message": "Profile updated"})
		return c.Redirect("/profile/"+user.Username, fiber.StatusSeeOther)
	}

	data := layoutData(c, "Edit profile")
	data["User"] = user
	return c.Render("blog/user", data, "layouts/main")
}

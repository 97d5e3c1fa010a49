package controllers

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/mediastore"
	"github.com/blogram/blogram/internal/pkg/usercontext"
	"github.com/blogram/blogram/internal/pkg/viewmodel"
)

// layoutData collects the bindings every page template expects.
func layoutData(c *fiber.Ctx, title string) fiber.Map {
	userCtx := usercontext.GetUserContext(c)

	data := fiber.Map{
		"Title":      title,
		"IsLoggedIn": userCtx.IsLoggedIn,
		"Username":   userCtx.Username,
		"Flash":      flash.Get(c),
	}
	if token, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	return data
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// renderNotFound is the single "not found" surface. Handlers use it both
// for entities that do not exist and for posts the viewer may not see, so
// hidden posts cannot be told apart from missing ones.
func renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", layoutData(c, "Not found"), "layouts/main")
}

func renderServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", layoutData(c, "Server error"), "layouts/main")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// redirectToPost is the soft failure target of the authorship guard.
func redirectToPost(c *fiber.Ctx, postID uint) error {
	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusSeeOther)
}

// validationMessages flattens validator errors into per-field messages for
// form re-rendering.
func validationMessages(err error) map[string]string {
	msgs := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs[""] = err.Error()
		return msgs
	}

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs[fe.Field()] = "This field is required."
		case "email":
			msgs[fe.Field()] = "Enter a valid email address."
		case "min":
			msgs[fe.Field()] = fmt.Sprintf("Must be at least %s characters.", fe.Param())
		case "max":
			msgs[fe.Field()] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			msgs[fe.Field()] = "Invalid value."
		}
	}
	return msgs
}

func postToView(post *models.Post) viewmodel.Post {
	view := viewmodel.Post{
		ID:           post.ID,
		Title:        post.Title,
		Text:         post.Text,
		PubDate:      post.PubDate.Format("02.01.2006 15:04"),
		Scheduled:    post.PubDate.After(time.Now()),
		IsPublished:  post.IsPublished,
		CommentCount: post.CommentCount,
	}
	if post.Author.ID != 0 {
		view.AuthorUsername = post.Author.Username
		view.AuthorName = post.Author.DisplayName()
	}
	if post.Category != nil {
		view.CategoryTitle = post.Category.Title
		view.CategorySlug = post.Category.Slug
	}
	if post.Location != nil {
		view.LocationName = post.Location.Name
	}
	if post.ImagePath != "" {
		view.ImageURL = "/uploads/" + path.Clean(post.ImagePath)
		view.PreviewURL = "/uploads/" + path.Clean(mediastore.PreviewPath(post.ImagePath))
	}
	return view
}

func postsToViews(posts []models.Post) []viewmodel.Post {
	views := make([]viewmodel.Post, 0, len(posts))
	for i := range posts {
		views = append(views, postToView(&posts[i]))
	}
	return views
}

func commentToView(comment *models.Comment) viewmodel.Comment {
	return viewmodel.Comment{
		ID:             comment.ID,
		PostID:         comment.PostID,
		Text:           comment.Text,
		AuthorUsername: comment.Author.Username,
		CreatedAt:      comment.CreatedAt.Format("02.01.2006 15:04"),
	}
}

func paginationView(page *repository.PostPage) viewmodel.Pagination {
	return viewmodel.Pagination{
		Page:       page.Page,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
		PrevPage:   page.Page - 1,
		NextPage:   page.Page + 1,
	}
}

// pageParam reads the ?page= query value; anything unusable means page 1.
func pageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/mediastore"
	"github.com/blogram/blogram/internal/pkg/metrics/counter"
	"github.com/blogram/blogram/internal/pkg/policy"
	"github.com/blogram/blogram/internal/pkg/usercontext"
	"github.com/blogram/blogram/internal/pkg/viewmodel"
)

// pubDateLayouts are the formats the post form may submit.
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02"}

// HandlePostDetail renders one post with its comment thread and an empty
// comment form. Posts the viewer may not see are indistinguishable from
// missing ones.
func HandlePostDetail(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return renderNotFound(c)
	}

	post, err := repos.Post.GetByID(postID)
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}
	if !policy.Visible(post, viewer) {
		return renderNotFound(c)
	}

	comments, err := repos.Comment.ListByPost(post.ID)
	if err != nil {
		return renderServerError(c)
	}

	// View counting is best-effort; a cold cache must not break the page.
	_ = counter.AddPostView(post.ID)

	commentViews := make([]viewmodel.Comment, 0, len(comments))
	for i := range comments {
		commentViews = append(commentViews, commentToView(&comments[i]))
	}

	view := postToView(post)
	view.CommentCount = int64(len(comments))
	view.ViewCount = counter.GetPostViews(post.ID)

	data := layoutData(c, post.Title)
	data["Post"] = view
	data["Comments"] = commentViews
	data["CanEdit"] = policy.CanMutate(post, viewer)

	return c.Render("blog/detail", data, "layouts/main")
}

// HandlePostCreate shows the post form and persists submissions. Only
// reachable authenticated; the author is always the current viewer.
func HandlePostCreate(c *fiber.Ctx) error {
	viewer := usercontext.Viewer(c)

	if c.Method() == fiber.MethodPost {
		post := &models.Post{AuthorID: viewer.ID}
		if msgs := bindPostForm(c, post); len(msgs) > 0 {
			return renderPostForm(c, "New post", post, msgs)
		}

		if err := repository.GetGlobalRepositories().Post.Create(post); err != nil {
			return renderServerError(c)
		}

		flash.WithSuccess(c, fiber.Map{"message": "Post created"})
		return redirectToPost(c, post.ID)
	}

	return renderPostForm(c, "New post", &models.Post{
		Published: models.Published{IsPublished: true},
		PubDate:   time.Now(),
	}, nil)
}

// HandlePostEdit lets the author change a post. Everyone else gets
// redirected to the post itself, never an error page.
func HandlePostEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return renderNotFound(c)
	}

	post, err := repos.Post.GetByID(postID)
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}
	if !policy.CanMutate(post, viewer) {
		if !viewer.Authenticated {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		return redirectToPost(c, post.RelatedPostID())
	}

	if c.Method() == fiber.MethodPost {
		previousImage := post.ImagePath
		if msgs := bindPostForm(c, post); len(msgs) > 0 {
			return renderPostForm(c, "Edit post", post, msgs)
		}

		if err := repos.Post.Update(post); err != nil {
			return renderServerError(c)
		}
		if previousImage != "" && previousImage != post.ImagePath {
			_ = mediastore.Remove(previousImage)
		}

		flash.WithSuccess(c, fiber.Map{"message": "Post updated"})
		return redirectToPost(c, post.ID)
	}

	return renderPostForm(c, "Edit post", post, nil)
}

// HandlePostDelete removes a post and, through the cascade, its comments.
func HandlePostDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return renderNotFound(c)
	}

	post, err := repos.Post.GetByID(postID)
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}
	if !policy.CanMutate(post, viewer) {
		if !viewer.Authenticated {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		return redirectToPost(c, post.RelatedPostID())
	}

	if err := repos.Post.Delete(post.ID); err != nil {
		return renderServerError(c)
	}
	_ = mediastore.Remove(post.ImagePath)

	flash.WithSuccess(c, fiber.Map{"message": "Post deleted"})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// bindPostForm fills the post from submitted fields, leaving AuthorID and
// ID untouched. It returns per-field messages when the submission cannot
// be persisted.
func bindPostForm(c *fiber.Ctx, post *models.Post) map[string]string {
	post.Title = c.FormValue("title")
	post.Text = c.FormValue("text")
	post.IsPublished = c.FormValue("is_published") == "on"

	pubDate, ok := parsePubDate(c.FormValue("pub_date"))
	if ok {
		post.PubDate = pubDate
	}

	post.CategoryID = optionalIDValue(c.FormValue("category_id"))
	post.Category = nil
	post.LocationID = optionalIDValue(c.FormValue("location_id"))
	post.Location = nil

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return map[string]string{"Image": "Could not read the uploaded file."}
		}
		defer src.Close()

		relPath, err := mediastore.SavePostImage(src, file.Filename)
		if err != nil {
			return map[string]string{"Image": "Unsupported image file."}
		}
		post.ImagePath = relPath
	}

	msgs := map[string]string{}
	if !ok {
		msgs["PubDate"] = "Enter a valid publication date."
	}
	if err := post.Validate(); err != nil {
		for field, msg := range validationMessages(err) {
			msgs[field] = msg
		}
	}
	if len(msgs) > 0 {
		return msgs
	}
	return nil
}

func renderPostForm(c *fiber.Ctx, title string, post *models.Post, errs map[string]string) error {
	repos := repository.GetGlobalRepositories()

	categories, err := repos.Category.ListPublished()
	if err != nil {
		return renderServerError(c)
	}
	locations, err := repos.Location.ListPublished()
	if err != nil {
		return renderServerError(c)
	}

	data := layoutData(c, title)
	data["FormTitle"] = title
	data["Post"] = post
	data["PubDateValue"] = post.PubDate.Format("2006-01-02T15:04")
	data["Categories"] = categories
	data["Locations"] = locations
	data["SelectedCategoryID"] = idValue(post.CategoryID)
	data["SelectedLocationID"] = idValue(post.LocationID)
	data["Errors"] = errs

	status := fiber.StatusOK
	if len(errs) > 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).Render("blog/create", data, "layouts/main")
}

func parsePubDate(value string) (time.Time, bool) {
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// idValue flattens an optional foreign key for template comparisons.
func idValue(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func optionalIDValue(value string) *uint {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/policy"
	"github.com/blogram/blogram/internal/pkg/usercontext"
)

// HandleCommentCreate persists a comment on a post the viewer can see and
// returns to the post's detail page.
func HandleCommentCreate(c *fiber.Ctx) error {
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
	// Commenting on a hidden post would reveal it exists.
	if !policy.Visible(post, viewer) {
		return renderNotFound(c)
	}

	comment := &models.Comment{
		Text:     c.FormValue("text"),
		PostID:   post.ID,
		AuthorID: viewer.ID,
	}
	if err := comment.Validate(); err != nil {
		flash.WithError(c, fiber.Map{"message": "Comment text is required"})
		return redirectToPost(c, post.ID)
	}

	if err := repos.Comment.Create(comment); err != nil {
		return renderServerError(c)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Comment added"})
	return redirectToPost(c, post.ID)
}

// HandleCommentEdit lets the comment's author change its text.
func HandleCommentEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	comment, done := loadGuardedComment(c, viewer)
	if comment == nil {
		return done
	}

	if c.Method() == fiber.MethodPost {
		comment.Text = c.FormValue("text")
		if err := comment.Validate(); err != nil {
			data := layoutData(c, "Edit comment")
			data["Comment"] = commentToView(comment)
			data["Errors"] = validationMessages(err)
			return c.Status(fiber.StatusUnprocessableEntity).Render("blog/comment", data, "layouts/main")
		}

		if err := repos.Comment.Update(comment); err != nil {
			return renderServerError(c)
		}

		flash.WithSuccess(c, fiber.Map{"message": "Comment updated"})
		return redirectToPost(c, comment.PostID)
	}

	data := layoutData(c, "Edit comment")
	data["Comment"] = commentToView(comment)
	return c.Render("blog/comment", data, "layouts/main")
}

// HandleCommentDelete removes the viewer's own comment.
func HandleCommentDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	viewer := usercontext.Viewer(c)

	comment, done := loadGuardedComment(c, viewer)
	if comment == nil {
		return done
	}

	if err := repos.Comment.Delete(comment.ID); err != nil {
		return renderServerError(c)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Comment deleted"})
	return redirectToPost(c, comment.PostID)
}

// loadGuardedComment resolves the comment from the route and applies the
// authorship guard. A nil comment means the returned error/redirect is the
// response.
func loadGuardedComment(c *fiber.Ctx, viewer policy.Viewer) (*models.Comment, error) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return nil, renderNotFound(c)
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return nil, renderNotFound(c)
	}

	comment, err := repository.GetGlobalRepositories().Comment.GetByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, renderNotFound(c)
		}
		return nil, renderServerError(c)
	}
	// The route carries both ids; a comment reached under the wrong post
	// does not exist as far as the client is concerned.
	if comment.PostID != postID {
		return nil, renderNotFound(c)
	}

	if !policy.CanMutate(comment, viewer) {
		if !viewer.Authenticated {
			return nil, c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		return nil, redirectToPost(c, comment.RelatedPostID())
	}

	return comment, nil
}

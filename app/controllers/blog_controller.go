package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/app/repository"
)

// HandleHome renders the public feed: published posts with comment counts,
// newest publication first.
func HandleHome(c *fiber.Ctx) error {
	posts := repository.GetGlobalRepositories().Post

	page, err := posts.Feed(repository.PostFeedOptions{
		PublishedOnly:     true,
		WithRelations:     true,
		WithCommentCounts: true,
		Page:              pageParam(c),
	})
	if err != nil {
		return renderServerError(c)
	}

	data := layoutData(c, "Blogram")
	data["Posts"] = postsToViews(page.Posts)
	data["Pagination"] = paginationView(page)

	return c.Render("blog/index", data, "layouts/main")
}

// HandleCategoryPosts renders the feed of one published category. Hidden
// or missing categories both come back as "not found".
func HandleCategoryPosts(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	category, err := repos.Category.GetPublishedBySlug(c.Params("slug"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	page, err := repos.Post.Feed(repository.PostFeedOptions{
		PublishedOnly: true,
		WithRelations: true,
		CategoryID:    &category.ID,
		Page:          pageParam(c),
	})
	if err != nil {
		return renderServerError(c)
	}

	data := layoutData(c, category.Title)
	data["Category"] = category
	data["Posts"] = postsToViews(page.Posts)
	data["Pagination"] = paginationView(page)

	return c.Render("blog/category", data, "layouts/main")
}

// Package apiv1 exposes a small read-only JSON surface over the public
// feed. It sees the world as an anonymous viewer: only published, past,
// visible-category posts exist here.
package apiv1

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/policy"
)

// APIServer implements the v1 handlers
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches the v1 routes to the given router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Get("/posts", s.GetPosts)
	r.Get("/posts/:post_id", s.GetPost)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// GetPosts returns one page of the public feed.
func (s *APIServer) GetPosts(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	feed, err := repository.GetGlobalRepositories().Post.Feed(repository.PostFeedOptions{
		PublishedOnly:     true,
		WithRelations:     true,
		WithCommentCounts: true,
		Page:              page,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_server_error",
		})
	}

	items := make([]fiber.Map, 0, len(feed.Posts))
	for i := range feed.Posts {
		items = append(items, postJSON(&feed.Posts[i]))
	}

	return c.JSON(fiber.Map{
		"posts":       items,
		"page":        feed.Page,
		"total_pages": feed.TotalPages,
		"total_count": feed.TotalCount,
	})
}

// GetPost returns a single visible post with its comment count.
func (s *APIServer) GetPost(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("post_id"), 10, 32)
	if err != nil || id == 0 {
		return notFoundJSON(c)
	}

	repos := repository.GetGlobalRepositories()
	post, err := repos.Post.GetByID(uint(id))
	if err != nil {
		return notFoundJSON(c)
	}
	if !policy.Visible(post, policy.Anonymous()) {
		return notFoundJSON(c)
	}

	count, err := repos.Comment.CountByPost(post.ID)
	if err == nil {
		post.CommentCount = count
	}

	return c.JSON(postJSON(post))
}

func notFoundJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": "post not found",
	})
}

func postJSON(post *models.Post) fiber.Map {
	m := fiber.Map{
		"id":            post.ID,
		"title":         post.Title,
		"text":          post.Text,
		"pub_date":      post.PubDate,
		"author":        post.Author.Username,
		"comment_count": post.CommentCount,
		"url":           fmt.Sprintf("/posts/%d", post.ID),
	}
	if post.Category != nil {
		m["category"] = post.Category.Slug
	}
	if post.Location != nil {
		m["location"] = post.Location.Name
	}
	return m
}

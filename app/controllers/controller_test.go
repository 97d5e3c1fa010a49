package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
	"github.com/blogram/blogram/app/repository"
	"github.com/blogram/blogram/internal/pkg/middleware"
	"github.com/blogram/blogram/internal/pkg/usercontext"
)

var testDB *gorm.DB

// headerViewer is the test stand-in for the session middleware: the
// X-Viewer-ID and X-Viewer-Name headers decide who is making the request.
const (
	headerViewerID   = "X-Viewer-ID"
	headerViewerName = "X-Viewer-Name"
)

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		panic(err)
	}

	testDB = db
	repository.InitializeFactory(db)

	os.Exit(m.Run())
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})

	app.Use(func(c *fiber.Ctx) error {
		if id, err := strconv.ParseUint(c.Get(headerViewerID), 10, 32); err == nil && id > 0 {
			c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
				UserID:     uint(id),
				Username:   c.Get(headerViewerName),
				IsLoggedIn: true,
			})
		}
		return c.Next()
	})

	app.Get("/", HandleHome)
	app.Get("/category/:slug", HandleCategoryPosts)
	app.Get("/profile/:username", HandleProfile)
	app.Get("/posts/:post_id", HandlePostDetail)
	app.Get("/posts/:post_id/edit", middleware.RequireAuth, HandlePostEdit)
	app.Post("/posts/:post_id/edit", middleware.RequireAuth, HandlePostEdit)
	app.Post("/posts/:post_id/delete", middleware.RequireAuth, HandlePostDelete)
	app.Post("/posts/:post_id/comment", middleware.RequireAuth, HandleCommentCreate)
	app.Post("/posts/:post_id/delete_comment/:comment_id", middleware.RequireAuth, HandleCommentDelete)
	app.Get("/pages/about", HandleAbout)
	app.Get("/pages/rules", HandleRules)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, viewer *models.User, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if viewer != nil {
		req.Header.Set(headerViewerID, strconv.FormatUint(uint64(viewer.ID), 10))
		req.Header.Set(headerViewerName, viewer.Username)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createPost(t *testing.T, author *models.User, title string, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Published: models.Published{IsPublished: published},
		Title:     title,
		Text:      "some text",
		PubDate:   pubDate,
		AuthorID:  author.ID,
	}
	require.NoError(t, testDB.Create(post).Error)
	return post
}

func TestPostDetailHidesScheduledPostFromOthers(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "sched_author")
	reader := createUser(t, "sched_reader")
	post := createPost(t, author, "scheduled for later", time.Now().Add(24*time.Hour), true)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	resp := doRequest(t, app, fiber.MethodGet, target, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, target, reader, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, target, author, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "scheduled for later")
}

func TestPostDetailHidesUnpublishedPost(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "draft_author")
	post := createPost(t, author, "my hidden draft", time.Now().Add(-time.Hour), false)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	resp := doRequest(t, app, fiber.MethodGet, target, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, target, author, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHomeFeedShowsOnlyVisiblePosts(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "feed_author")
	createPost(t, author, "feed visible entry", time.Now().Add(-time.Hour), true)
	createPost(t, author, "feed future entry", time.Now().Add(time.Hour), true)
	createPost(t, author, "feed draft entry", time.Now().Add(-time.Hour), false)

	resp := doRequest(t, app, fiber.MethodGet, "/", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "feed visible entry")
	assert.NotContains(t, body, "feed future entry")
	assert.NotContains(t, body, "feed draft entry")
}

func TestCommentCreateRedirectsToPost(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "cmt_author")
	commenter := createUser(t, "cmt_commenter")
	post := createPost(t, author, "commented post", time.Now().Add(-time.Hour), true)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	resp := doRequest(t, app, fiber.MethodPost, target+"/comment", commenter, url.Values{"text": {"nice one"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, target, resp.Header.Get("Location"))

	count, err := repository.GetGlobalRepositories().Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCommentCreateOnHiddenPostIs404(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "hidden_cmt_author")
	commenter := createUser(t, "hidden_cmt_commenter")
	post := createPost(t, author, "hidden comment target", time.Now().Add(time.Hour), true)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	resp := doRequest(t, app, fiber.MethodPost, target+"/comment", commenter, url.Values{"text": {"sneaky"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPostEditGuard(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "guard_author")
	other := createUser(t, "guard_other")
	post := createPost(t, author, "guarded post", time.Now().Add(-time.Hour), true)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	// Unauthenticated viewers are sent to the login page.
	resp := doRequest(t, app, fiber.MethodGet, target+"/edit", nil, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	// Logged-in non-authors bounce back to the post itself.
	resp = doRequest(t, app, fiber.MethodGet, target+"/edit", other, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, target, resp.Header.Get("Location"))

	resp = doRequest(t, app, fiber.MethodGet, target+"/edit", author, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "guarded post")
}

func TestPostDeleteGuardRedirectsNonAuthor(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "del_author")
	other := createUser(t, "del_other")
	post := createPost(t, author, "deletable post", time.Now().Add(-time.Hour), true)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	resp := doRequest(t, app, fiber.MethodPost, target+"/delete", other, url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, target, resp.Header.Get("Location"))

	// The post is still there.
	_, err := repository.GetGlobalRepositories().Post.GetByID(post.ID)
	assert.NoError(t, err)

	resp = doRequest(t, app, fiber.MethodPost, target+"/delete", author, url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, err = repository.GetGlobalRepositories().Post.GetByID(post.ID)
	assert.Error(t, err)
}

func TestProfileOwnerSeesOwnHiddenPosts(t *testing.T) {
	app := newTestApp()
	owner := createUser(t, "prof_owner")
	visitor := createUser(t, "prof_visitor")
	createPost(t, owner, "prof public entry", time.Now().Add(-time.Hour), true)
	createPost(t, owner, "prof scheduled entry", time.Now().Add(time.Hour), true)
	createPost(t, owner, "prof draft entry", time.Now().Add(-time.Hour), false)

	resp := doRequest(t, app, fiber.MethodGet, "/profile/prof_owner", visitor, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "prof public entry")
	assert.NotContains(t, body, "prof scheduled entry")
	assert.NotContains(t, body, "prof draft entry")

	resp = doRequest(t, app, fiber.MethodGet, "/profile/prof_owner", owner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = readBody(t, resp)
	assert.Contains(t, body, "prof public entry")
	assert.Contains(t, body, "prof scheduled entry")
	assert.Contains(t, body, "prof draft entry")
}

func TestProfileUnknownUserIs404(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, fiber.MethodGet, "/profile/nobody_here", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCommentDeleteGuard(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "cdel_author")
	other := createUser(t, "cdel_other")
	post := createPost(t, author, "cdel post", time.Now().Add(-time.Hour), true)

	comment := &models.Comment{Text: "mine", PostID: post.ID, AuthorID: author.ID}
	require.NoError(t, testDB.Create(comment).Error)

	target := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)
	deleteTarget := target + "/delete_comment/" + strconv.FormatUint(uint64(comment.ID), 10)

	resp := doRequest(t, app, fiber.MethodPost, deleteTarget, other, url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, target, resp.Header.Get("Location"))

	count, err := repository.GetGlobalRepositories().Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	resp = doRequest(t, app, fiber.MethodPost, deleteTarget, author, url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	count, err = repository.GetGlobalRepositories().Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCommentUnderWrongPostIs404(t *testing.T) {
	app := newTestApp()
	author := createUser(t, "wrongpost_author")
	postA := createPost(t, author, "wrongpost a", time.Now().Add(-time.Hour), true)
	postB := createPost(t, author, "wrongpost b", time.Now().Add(-time.Hour), true)

	comment := &models.Comment{Text: "on a", PostID: postA.ID, AuthorID: author.ID}
	require.NoError(t, testDB.Create(comment).Error)

	target := "/posts/" + strconv.FormatUint(uint64(postB.ID), 10) +
		"/delete_comment/" + strconv.FormatUint(uint64(comment.ID), 10)

	resp := doRequest(t, app, fiber.MethodPost, target, author, url.Values{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStaticPagesRender(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, fiber.MethodGet, "/pages/about", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, "/pages/rules", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

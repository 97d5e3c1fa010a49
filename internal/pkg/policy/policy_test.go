package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogram/blogram/app/models"
)

func publishedCategory(published bool) *models.Category {
	return &models.Category{
		Published: models.Published{IsPublished: published},
		ID:        1,
		Title:     "Travel",
		Slug:      "travel",
	}
}

func TestVisibleAuthorSeesEverything(t *testing.T) {
	author := Viewer{ID: 7, Username: "ann", Authenticated: true}
	now := time.Now()

	posts := []*models.Post{
		{AuthorID: 7, Published: models.Published{IsPublished: false}, PubDate: now.Add(-time.Hour)},
		{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(48 * time.Hour)},
		{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(-time.Hour), Category: publishedCategory(false)},
	}

	for _, p := range posts {
		assert.True(t, VisibleAt(p, author, now))
	}
}

func TestVisibleNonAuthorNeedsAllThree(t *testing.T) {
	viewer := Viewer{ID: 2, Username: "bob", Authenticated: true}
	now := time.Now()

	tests := []struct {
		name string
		post *models.Post
		want bool
	}{
		{
			name: "published past post without category",
			post: &models.Post{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(-time.Hour)},
			want: true,
		},
		{
			name: "published past post in published category",
			post: &models.Post{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(-time.Hour), Category: publishedCategory(true)},
			want: true,
		},
		{
			name: "unpublished post",
			post: &models.Post{AuthorID: 7, Published: models.Published{IsPublished: false}, PubDate: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "future-dated post",
			post: &models.Post{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(time.Hour)},
			want: false,
		},
		{
			name: "post in hidden category",
			post: &models.Post{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now.Add(-time.Hour), Category: publishedCategory(false)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleAt(tt.post, viewer, now))
		})
	}
}

func TestVisiblePubDateBoundaryIsInclusive(t *testing.T) {
	now := time.Now()
	post := &models.Post{AuthorID: 7, Published: models.Published{IsPublished: true}, PubDate: now}

	assert.True(t, VisibleAt(post, Anonymous(), now))
}

func TestVisibleAnonymousNeverMatchesAuthor(t *testing.T) {
	now := time.Now()
	// Author ID 0 must not let the zero-value anonymous viewer through the
	// author branch.
	post := &models.Post{AuthorID: 0, Published: models.Published{IsPublished: false}, PubDate: now.Add(-time.Hour)}

	assert.False(t, VisibleAt(post, Anonymous(), now))
}

func TestCanMutate(t *testing.T) {
	post := &models.Post{ID: 3, AuthorID: 7}
	comment := &models.Comment{ID: 9, PostID: 3, AuthorID: 2}

	author := Viewer{ID: 7, Authenticated: true}
	other := Viewer{ID: 2, Authenticated: true}

	assert.True(t, CanMutate(post, author))
	assert.False(t, CanMutate(post, other))
	assert.True(t, CanMutate(comment, other))
	assert.False(t, CanMutate(comment, author))
	assert.False(t, CanMutate(post, Anonymous()))
}

func TestOwnedRedirectTargets(t *testing.T) {
	post := &models.Post{ID: 3, AuthorID: 7}
	comment := &models.Comment{ID: 9, PostID: 3, AuthorID: 2}

	assert.Equal(t, uint(3), post.RelatedPostID())
	assert.Equal(t, uint(3), comment.RelatedPostID())
}

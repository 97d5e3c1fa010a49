// Package policy holds the visibility and authorship rules. Both checks are
// pure functions over the entity and the viewer so they can be tested
// without a request or a database.
package policy

import (
	"time"

	"github.com/blogram/blogram/app/models"
)

// Viewer is the actor issuing a request. The zero value is an anonymous
// visitor.
type Viewer struct {
	ID            uint
	Username      string
	Authenticated bool
}

// Anonymous returns the viewer for an unauthenticated request.
func Anonymous() Viewer {
	return Viewer{}
}

// Owned is anything with an author that can resolve the post a denied
// mutation should redirect to. Post and Comment implement it.
type Owned interface {
	OwnerID() uint
	RelatedPostID() uint
}

// Visible reports whether the viewer may see the post.
//
// The author sees every own post, published or not, future-dated or not.
// Everyone else sees a post only when it is published, its pub date has
// passed (inclusive) and its category, if any, is published too. A post
// without a category is treated as having an always-published one.
func Visible(post *models.Post, viewer Viewer) bool {
	return VisibleAt(post, viewer, time.Now())
}

// VisibleAt is Visible evaluated against an explicit moment.
func VisibleAt(post *models.Post, viewer Viewer, now time.Time) bool {
	if viewer.Authenticated && post.AuthorID == viewer.ID {
		return true
	}
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	if post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return true
}

// CanMutate reports whether the viewer may edit or delete the entity.
// Authorship is the only basis for mutation rights; there is no moderator
// override.
func CanMutate(entity Owned, viewer Viewer) bool {
	return viewer.Authenticated && entity.OwnerID() == viewer.ID
}

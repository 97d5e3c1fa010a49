package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
)

// FeedPageSize is the fixed page size of every list view.
const FeedPageSize = 10

// PostFeedOptions parameterizes the shared post query pipeline. Every list
// view (home, category, profile) is one parameterization of it.
type PostFeedOptions struct {
	// PublishedOnly keeps only posts a non-author may see: published, pub
	// date passed, category absent or published.
	PublishedOnly bool
	// WithRelations preloads Author, Category and Location in the same
	// round trip instead of one query per post.
	WithRelations bool
	// WithCommentCounts attaches a per-post comment count via a single
	// grouped subquery.
	WithCommentCounts bool
	CategoryID        *uint
	AuthorID          *uint
	// Page is 1-based; out-of-range values clamp to the last valid page.
	Page    int
	PerPage int
	// Now overrides the publication cutoff, mainly for tests. Zero means
	// time.Now at evaluation.
	Now time.Time
}

// PostPage is one page of feed results.
type PostPage struct {
	Posts      []models.Post
	Page       int
	TotalPages int
	TotalCount int64
}

// HasPrev reports whether an earlier page exists.
func (p *PostPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *PostPage) HasNext() bool { return p.Page < p.TotalPages }

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// PostRepository defines the interface for post-related database operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	Feed(opts PostFeedOptions) (*PostPage, error)
	CountByAuthor(authorID uint) (int64, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetPublishedBySlug(slug string) (*models.Category, error)
	ListPublished() ([]models.Category, error)
	SlugExists(slug string) (bool, error)
	Delete(id uint) error
}

// LocationRepository defines the interface for location-related operations
type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id uint) (*models.Location, error)
	ListPublished() ([]models.Location, error)
	Delete(id uint) error
}

// CommentRepository defines the interface for comment-related operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByPost(postID uint) ([]models.Comment, error)
	CountByPost(postID uint) (int64, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Post     PostRepository
	Category CategoryRepository
	Location LocationRepository
	Comment  CommentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Location: NewLocationRepository(db),
		Comment:  NewCommentRepository(db),
	}
}

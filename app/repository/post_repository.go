package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/blogram/blogram/app/models"
)

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post in the database
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by its ID with author, category and location
// loaded.
func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Location").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update updates an existing post in the database
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post; its comments go with it through the foreign key
// cascade.
func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// CountByAuthor returns the number of posts written by a user
func (r *postRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Feed runs the shared post query pipeline: visibility filter, relation
// preloading and comment-count aggregation, each behind its own toggle,
// ordered by descending pub date and paginated at a fixed page size.
func (r *postRepository) Feed(opts PostFeedOptions) (*PostPage, error) {
	if opts.PerPage <= 0 {
		opts.PerPage = FeedPageSize
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	scoped := func() *gorm.DB {
		q := r.db.Model(&models.Post{})
		if opts.CategoryID != nil {
			q = q.Where("posts.category_id = ?", *opts.CategoryID)
		}
		if opts.AuthorID != nil {
			q = q.Where("posts.author_id = ?", *opts.AuthorID)
		}
		if opts.PublishedOnly {
			q = q.Where("posts.is_published = ?", true).
				Where("posts.pub_date <= ?", now).
				Where("posts.category_id IS NULL OR posts.category_id IN (?)",
					r.db.Model(&models.Category{}).Select("id").Where("is_published = ?", true))
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(opts.PerPage) - 1) / int64(opts.PerPage))
	if totalPages < 1 {
		totalPages = 1
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	// Standard paginator behavior: out-of-range pages fall back to the
	// last valid page instead of erroring.
	if page > totalPages {
		page = totalPages
	}

	q := scoped()
	if opts.WithCommentCounts {
		q = q.Select("posts.*, (?) AS comment_count",
			r.db.Model(&models.Comment{}).
				Select("COUNT(*)").
				Where("comments.post_id = posts.id"))
	}
	if opts.WithRelations {
		q = q.Preload("Author").Preload("Category").Preload("Location")
	}

	var posts []models.Post
	err := q.Order("posts.pub_date DESC").
		Offset((page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

package viewmodel

// Post carries everything a template needs to render one post card or
// detail block, with paths and dates already formatted.
type Post struct {
	ID             uint
	Title          string
	Text           string
	AuthorUsername string
	AuthorName     string
	CategoryTitle  string
	CategorySlug   string
	LocationName   string
	PubDate        string
	Scheduled      bool
	IsPublished    bool
	ImageURL       string
	PreviewURL     string
	CommentCount   int64
	ViewCount      int64
}

// Comment is the template form of one comment in a thread.
type Comment struct {
	ID             uint
	PostID         uint
	Text           string
	AuthorUsername string
	CreatedAt      string
}

// Pagination describes the pager under every list view.
type Pagination struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

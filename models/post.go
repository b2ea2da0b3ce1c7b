package models

type Post struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"type:varchar;not null"`
	Body      string `json:"body" gorm:"type:text;not null"`
	Published bool   `json:"published" gorm:"not null;default:false"`
}

func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest requires both keys to be present; empty strings are valid.
type CreatePostRequest struct {
	Title *string `json:"title" binding:"required"`
	Body  *string `json:"body" binding:"required"`
}

func NewCreatePostRequest(title, body string) *CreatePostRequest {
	return &CreatePostRequest{Title: &title, Body: &body}
}

// UpdatePostRequest is a partial patch: nil fields are left untouched.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

// Changes returns the column assignments carried by the patch.
func (r *UpdatePostRequest) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Body != nil {
		changes["body"] = *r.Body
	}
	if r.Published != nil {
		changes["published"] = *r.Published
	}
	return changes
}

type ListPostsQuery struct {
	IsPublished *bool `form:"is_published"`
	Limit       *int  `form:"limit"`
}

const (
	DefaultListPublished = true
	DefaultListLimit     = 5
)

// Resolve applies the listing defaults.
func (q *ListPostsQuery) Resolve() (isPublished bool, limit int) {
	isPublished, limit = DefaultListPublished, DefaultListLimit
	if q.IsPublished != nil {
		isPublished = *q.IsPublished
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	return isPublished, limit
}

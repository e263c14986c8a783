package blogs

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"

	wordsPerMinute = 200
)

type Author struct {
	Name   string `bson:"name" json:"name" validate:"required,max=100"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio    string `bson:"bio,omitempty" json:"bio,omitempty" validate:"max=200"`
}

type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty" validate:"max=60"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty" validate:"max=160"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	OGImage         string   `bson:"ogImage,omitempty" json:"ogImage,omitempty"`
}

type Comment struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name" validate:"required,max=100"`
	Email      string    `bson:"email" json:"email" validate:"required,mailbox"`
	Message    string    `bson:"message" json:"message" validate:"required,max=1000"`
	IsApproved bool      `bson:"isApproved" json:"isApproved"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type Blog struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title" validate:"required,max=200"`
	Slug          string     `bson:"slug" json:"slug" validate:"required,lowercase"`
	Excerpt       string     `bson:"excerpt" json:"excerpt" validate:"required,max=500"`
	Content       string     `bson:"content" json:"content" validate:"required"`
	FeaturedImage string     `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	Author        Author     `bson:"author" json:"author"`
	Category      string     `bson:"category" json:"category" validate:"required,enum=blogCategory"`
	Tags          []string   `bson:"tags" json:"tags"`
	Status        string     `bson:"status" json:"status" validate:"required,oneof=draft published archived"`
	IsPublished   bool       `bson:"isPublished" json:"isPublished"`
	IsFeatured    bool       `bson:"isFeatured" json:"isFeatured"`
	PublishedAt   *time.Time `bson:"publishedAt,omitempty" json:"publishedAt"`
	ReadTime      int        `bson:"readTime" json:"readTime"`
	Views         int64      `bson:"views" json:"views"`
	Likes         int64      `bson:"likes" json:"likes"`
	SEO           SEO        `bson:"seo" json:"seo"`
	RelatedPosts  []string   `bson:"relatedPosts,omitempty" json:"relatedPosts,omitempty"`
	Comments      []Comment  `bson:"comments" json:"comments"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Visible reports whether the post may be shown to anonymous readers.
func (b Blog) Visible() bool {
	return b.IsPublished && b.Status == StatusPublished
}

type CreateRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featuredImage"`
	Author        *Author  `json:"author"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
	IsPublished   bool     `json:"isPublished"`
	IsFeatured    bool     `json:"isFeatured"`
	SEO           *SEO     `json:"seo"`
	RelatedPosts  []string `json:"relatedPosts"`
}

// UpdateRequest lists the fields an update may touch; counters, comments and
// derived fields are not among them.
type UpdateRequest struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featuredImage"`
	Author        *Author   `json:"author"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	Status        *string   `json:"status"`
	IsPublished   *bool     `json:"isPublished"`
	IsFeatured    *bool     `json:"isFeatured"`
	SEO           *SEO      `json:"seo"`
	RelatedPosts  *[]string `json:"relatedPosts"`
}

type CommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

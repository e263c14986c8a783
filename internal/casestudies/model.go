package casestudies

import "time"

type Client struct {
	Name     string `bson:"name" json:"name" validate:"required,max=100"`
	Logo     string `bson:"logo,omitempty" json:"logo,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
	Industry string `bson:"industry" json:"industry" validate:"required,enum=industry"`
}

type Result struct {
	Metric      string `bson:"metric" json:"metric" validate:"required"`
	Value       string `bson:"value" json:"value" validate:"required"`
	Improvement string `bson:"improvement,omitempty" json:"improvement,omitempty"`
}

type Timeline struct {
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

type Image struct {
	URL     string `bson:"url" json:"url" validate:"required"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
	IsMain  bool   `bson:"isMain" json:"isMain"`
}

type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty" validate:"max=60"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty" validate:"max=160"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Slug            string   `bson:"slug,omitempty" json:"slug,omitempty"`
}

type TestimonialAuthor struct {
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Position string `bson:"position,omitempty" json:"position,omitempty"`
	Company  string `bson:"company,omitempty" json:"company,omitempty"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

type Testimonial struct {
	Quote  string            `bson:"quote,omitempty" json:"quote,omitempty" validate:"max=500"`
	Author TestimonialAuthor `bson:"author" json:"author"`
}

type CaseStudy struct {
	ID           string      `bson:"_id,omitempty" json:"id"`
	Title        string      `bson:"title" json:"title" validate:"required,max=150"`
	Client       Client      `bson:"client" json:"client"`
	Description  string      `bson:"description" json:"description" validate:"required,max=300"`
	Challenge    string      `bson:"challenge" json:"challenge" validate:"required,max=1000"`
	Solution     string      `bson:"solution" json:"solution" validate:"required,max=1500"`
	Results      []Result    `bson:"results" json:"results" validate:"dive"`
	Services     []string    `bson:"services" json:"services" validate:"dive,enum=serviceCategory"`
	Technologies []string    `bson:"technologies" json:"technologies"`
	Duration     string      `bson:"duration" json:"duration" validate:"required"`
	Timeline     Timeline    `bson:"timeline" json:"timeline"`
	Images       []Image     `bson:"images" json:"images" validate:"dive"`
	Tags         []string    `bson:"tags" json:"tags"`
	IsPublished  bool        `bson:"isPublished" json:"isPublished"`
	IsFeatured   bool        `bson:"isFeatured" json:"isFeatured"`
	ViewCount    int64       `bson:"viewCount" json:"viewCount"`
	Order        int         `bson:"order" json:"order"`
	SEO          SEO         `bson:"seo" json:"seo"`
	Testimonial  Testimonial `bson:"testimonial" json:"testimonial"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title        string       `json:"title"`
	Client       Client       `json:"client"`
	Description  string       `json:"description"`
	Challenge    string       `json:"challenge"`
	Solution     string       `json:"solution"`
	Results      []Result     `json:"results"`
	Services     []string     `json:"services"`
	Technologies []string     `json:"technologies"`
	Duration     string       `json:"duration"`
	Timeline     Timeline     `json:"timeline"`
	Images       []Image      `json:"images"`
	Tags         []string     `json:"tags"`
	IsPublished  bool         `json:"isPublished"`
	IsFeatured   bool         `json:"isFeatured"`
	Order        int          `json:"order"`
	SEO          *SEO         `json:"seo"`
	Testimonial  *Testimonial `json:"testimonial"`
}

type UpdateRequest struct {
	Title        *string      `json:"title"`
	Client       *Client      `json:"client"`
	Description  *string      `json:"description"`
	Challenge    *string      `json:"challenge"`
	Solution     *string      `json:"solution"`
	Results      *[]Result    `json:"results"`
	Services     *[]string    `json:"services"`
	Technologies *[]string    `json:"technologies"`
	Duration     *string      `json:"duration"`
	Timeline     *Timeline    `json:"timeline"`
	Images       *[]Image     `json:"images"`
	Tags         *[]string    `json:"tags"`
	IsPublished  *bool        `json:"isPublished"`
	IsFeatured   *bool        `json:"isFeatured"`
	Order        *int         `json:"order"`
	SEO          *SEO         `json:"seo"`
	Testimonial  *Testimonial `json:"testimonial"`
}

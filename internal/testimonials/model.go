package testimonials

import "time"

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"

	defaultService = "General"
	defaultSource  = "direct"
)

type Client struct {
	Name        string `bson:"name" json:"name" validate:"required,max=50"`
	Position    string `bson:"position,omitempty" json:"position,omitempty" validate:"max=100"`
	Company     string `bson:"company,omitempty" json:"company,omitempty" validate:"max=100"`
	Avatar      string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CompanyLogo string `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
}

type Testimonial struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Client             Client    `bson:"client" json:"client"`
	Quote              string    `bson:"quote" json:"quote" validate:"required,max=500"`
	Rating             int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Service            string    `bson:"service" json:"service" validate:"required,enum=testimonialService"`
	Project            string    `bson:"project,omitempty" json:"project,omitempty"`
	IsPublished        bool      `bson:"isPublished" json:"isPublished"`
	IsFeatured         bool      `bson:"isFeatured" json:"isFeatured"`
	Order              int       `bson:"order" json:"order"`
	Source             string    `bson:"source" json:"source" validate:"required,enum=testimonialSource"`
	SourceURL          string    `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	VerificationStatus string    `bson:"verificationStatus" json:"verificationStatus" validate:"required,oneof=pending verified rejected"`
	Tags               []string  `bson:"tags" json:"tags"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Client      Client   `json:"client"`
	Quote       string   `json:"quote"`
	Rating      int      `json:"rating"`
	Service     string   `json:"service"`
	Project     string   `json:"project"`
	IsPublished bool     `json:"isPublished"`
	IsFeatured  bool     `json:"isFeatured"`
	Order       int      `json:"order"`
	Source      string   `json:"source"`
	SourceURL   string   `json:"sourceUrl"`
	Tags        []string `json:"tags"`
}

type UpdateRequest struct {
	Client      *Client   `json:"client"`
	Quote       *string   `json:"quote"`
	Rating      *int      `json:"rating"`
	Service     *string   `json:"service"`
	Project     *string   `json:"project"`
	IsPublished *bool     `json:"isPublished"`
	IsFeatured  *bool     `json:"isFeatured"`
	Order       *int      `json:"order"`
	Source      *string   `json:"source"`
	SourceURL   *string   `json:"sourceUrl"`
	Tags        *[]string `json:"tags"`
}

type VerifyRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected"`
}

package services

import "time"

const defaultCurrency = "USD"

type Pricing struct {
	StartingPrice float64 `bson:"startingPrice" json:"startingPrice" validate:"gte=0"`
	Currency      string  `bson:"currency" json:"currency" validate:"required,len=3"`
	PricingModel  string  `bson:"pricingModel,omitempty" json:"pricingModel,omitempty" validate:"omitempty,enum=pricingModel"`
}

type Stats struct {
	CompletedProjects  int    `bson:"completedProjects" json:"completedProjects" validate:"gte=0"`
	ClientsSatisfied   int    `bson:"clientsSatisfied" json:"clientsSatisfied" validate:"gte=0"`
	AverageImprovement string `bson:"averageImprovement,omitempty" json:"averageImprovement,omitempty"`
}

type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty" validate:"max=60"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty" validate:"max=160"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

type Service struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	Title               string    `bson:"title" json:"title" validate:"required,max=100"`
	Description         string    `bson:"description" json:"description" validate:"required,max=500"`
	DetailedDescription string    `bson:"detailedDescription,omitempty" json:"detailedDescription,omitempty" validate:"max=2000"`
	Icon                string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Category            string    `bson:"category" json:"category" validate:"required,enum=serviceCategory"`
	Features            []string  `bson:"features" json:"features"`
	Pricing             Pricing   `bson:"pricing" json:"pricing"`
	Stats               Stats     `bson:"stats" json:"stats"`
	Technologies        []string  `bson:"technologies" json:"technologies"`
	IsActive            bool      `bson:"isActive" json:"isActive"`
	IsFeatured          bool      `bson:"isFeatured" json:"isFeatured"`
	Order               int       `bson:"order" json:"order"`
	SEO                 SEO       `bson:"seo" json:"seo"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription"`
	Icon                string   `json:"icon"`
	Category            string   `json:"category"`
	Features            []string `json:"features"`
	Pricing             *Pricing `json:"pricing"`
	Stats               *Stats   `json:"stats"`
	Technologies        []string `json:"technologies"`
	IsActive            *bool    `json:"isActive"`
	IsFeatured          bool     `json:"isFeatured"`
	Order               int      `json:"order"`
	SEO                 *SEO     `json:"seo"`
}

type UpdateRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	DetailedDescription *string   `json:"detailedDescription"`
	Icon                *string   `json:"icon"`
	Category            *string   `json:"category"`
	Features            *[]string `json:"features"`
	Pricing             *Pricing  `json:"pricing"`
	Stats               *Stats    `json:"stats"`
	Technologies        *[]string `json:"technologies"`
	IsActive            *bool     `json:"isActive"`
	IsFeatured          *bool     `json:"isFeatured"`
	Order               *int      `json:"order"`
	SEO                 *SEO      `json:"seo"`
}

// Position is one entry of a reorder request.
type Position struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
}

package analytics

import "time"

// Collection names a document set the dashboard aggregates over.
type Collection string

const (
	Blogs        Collection = "blogs"
	CaseStudies  Collection = "casestudies"
	Contacts     Collection = "contacts"
	Services     Collection = "services"
	Testimonials Collection = "testimonials"
	Users        Collection = "users"
)

// Bucket is one group of a group-by count or sum.
type Bucket struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// TimeBucket is a raw (year, month[, day]) group. Day is zero for monthly
// groups.
type TimeBucket struct {
	Year  int   `bson:"year"`
	Month int   `bson:"month"`
	Day   int   `bson:"day"`
	Count int64 `bson:"count"`
}

// Point is one entry of a gap-free trend series.
type Point struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// Ranked is a document projected for a top-N table.
type Ranked struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Slug     string `bson:"slug,omitempty" json:"slug,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
	Value    int64  `bson:"value" json:"value"`
}

// Event is a recently created document of any kind.
type Event struct {
	Type      string    `bson:"-" json:"type"`
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type ContactStats struct {
	Total          int64    `json:"total"`
	New            int64    `json:"new"`
	ThisMonth      int64    `json:"thisMonth"`
	LastMonth      int64    `json:"lastMonth"`
	Growth         float64  `json:"growth"`
	ByStatus       []Bucket `json:"byStatus"`
	ConversionRate float64  `json:"conversionRate"`
}

type ServiceStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Featured int64 `json:"featured"`
}

type BlogStats struct {
	Total      int64 `json:"total"`
	Published  int64 `json:"published"`
	Drafts     int64 `json:"drafts"`
	TotalViews int64 `json:"totalViews"`
}

type TestimonialStats struct {
	Total         int64   `json:"total"`
	Published     int64   `json:"published"`
	AverageRating float64 `json:"averageRating"`
}

type CaseStudyStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
}

type UserStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type Dashboard struct {
	Contacts       ContactStats     `json:"contacts"`
	Services       ServiceStats     `json:"services"`
	Blogs          BlogStats        `json:"blogs"`
	Testimonials   TestimonialStats `json:"testimonials"`
	CaseStudies    CaseStudyStats   `json:"caseStudies"`
	Users          UserStats        `json:"users"`
	RecentContacts []Event          `json:"recentContacts"`
}

type ContactReport struct {
	Months            int      `json:"months"`
	ByStatus          []Bucket `json:"byStatus"`
	ByPriority        []Bucket `json:"byPriority"`
	BySource          []Bucket `json:"bySource"`
	ByServiceInterest []Bucket `json:"byServiceInterest"`
	ByBudget          []Bucket `json:"byBudget"`
	Monthly           []Point  `json:"monthlyTrend"`
	Daily             []Point  `json:"dailyTrend"`
	ConversionRate    float64  `json:"conversionRate"`
}

type PerformanceReport struct {
	TopBlogs           []Ranked `json:"topBlogs"`
	ViewsByCategory    []Bucket `json:"viewsByCategory"`
	TopCaseStudies     []Ranked `json:"topCaseStudies"`
	RatingDistribution []Bucket `json:"ratingDistribution"`
	AverageRating      float64  `json:"averageRating"`
	TopServices        []Ranked `json:"topServices"`
}

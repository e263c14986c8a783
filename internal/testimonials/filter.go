package testimonials

import (
	"net/url"
	"strings"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	PublishedOnly bool
	Featured      bool
	Verified      bool
	Service       string
	// MinRating is 0 when ratings are not filtered.
	MinRating int
	Search    string
	Sort      []query.Sort
	Page      query.Page
}

var sortFields = map[string]string{
	"order":     "order",
	"rating":    "rating",
	"createdAt": "createdAt",
}

var defaultSort = []query.Sort{
	{Field: "order"},
	{Field: "createdAt", Desc: true},
}

var searchFields = []string{"client.name", "quote", "client.company"}

func ParseListFilter(values url.Values, privileged bool) ListFilter {
	f := ListFilter{
		PublishedOnly: query.Visible(values, "published", privileged, true),
		Featured:      query.IsTrue(values, "featured"),
		Verified:      query.IsTrue(values, "verified"),
		Service:       query.Sentinel(values.Get("service")),
		Search:        strings.TrimSpace(values.Get("search")),
		Sort:          query.ParseSort(values, sortFields, defaultSort),
		Page:          query.ParsePage(values),
	}
	if n := query.Int(values, "minRating", 0); n >= 1 && n <= 5 {
		f.MinRating = int(n)
	}
	return f
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.PublishedOnly {
		q["isPublished"] = true
	}
	if f.Featured {
		q["isFeatured"] = true
	}
	if f.Verified {
		q["verificationStatus"] = VerificationVerified
	}
	if f.Service != "" {
		q["service"] = f.Service
	}
	if f.MinRating > 0 {
		q["rating"] = bson.M{"$gte": f.MinRating}
	}
	if clauses := query.Search(f.Search, searchFields...); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

package casestudies

import (
	"net/url"
	"strings"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	PublishedOnly bool
	Featured      bool
	Industry      string
	Services      []string
	Search        string
	Sort          []query.Sort
	Page          query.Page
}

var sortFields = map[string]string{
	"order":     "order",
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"title":     "title",
	"viewCount": "viewCount",
}

var defaultSort = []query.Sort{
	{Field: "order"},
	{Field: "createdAt", Desc: true},
}

var searchFields = []string{"title", "description", "client.name", "tags"}

// ParseListFilter reads the case-study list query string. Privileged callers
// see every case study unless they ask for published=true.
func ParseListFilter(values url.Values, privileged bool) ListFilter {
	return ListFilter{
		PublishedOnly: query.Visible(values, "published", privileged, false),
		Featured:      query.IsTrue(values, "featured"),
		Industry:      query.Sentinel(values.Get("industry")),
		Services:      query.List(values.Get("services")),
		Search:        strings.TrimSpace(values.Get("search")),
		Sort:          query.ParseSort(values, sortFields, defaultSort),
		Page:          query.ParsePage(values),
	}
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.PublishedOnly {
		q["isPublished"] = true
	}
	if f.Featured {
		q["isFeatured"] = true
	}
	if f.Industry != "" {
		q["client.industry"] = f.Industry
	}
	if len(f.Services) > 0 {
		q["services"] = bson.M{"$in": f.Services}
	}
	if clauses := query.Search(f.Search, searchFields...); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

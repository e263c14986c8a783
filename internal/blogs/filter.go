package blogs

import (
	"net/url"
	"strings"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	VisibleOnly bool
	Featured    bool
	Category    string
	Tags        []string
	Author      string
	Status      string
	Search      string
	Sort        []query.Sort
	Page        query.Page
}

var sortFields = map[string]string{
	"createdAt":   "createdAt",
	"updatedAt":   "updatedAt",
	"publishedAt": "publishedAt",
	"title":       "title",
	"views":       "views",
	"likes":       "likes",
	"readTime":    "readTime",
}

var defaultSort = []query.Sort{{Field: "createdAt", Desc: true}}

var searchFields = []string{"title", "excerpt", "content", "tags"}

// ParseListFilter reads the blog list query string. privileged callers may
// lift the published gate with any value other than "true".
func ParseListFilter(values url.Values, privileged bool) ListFilter {
	f := ListFilter{
		VisibleOnly: query.Visible(values, "published", privileged, true),
		Featured:    query.IsTrue(values, "featured"),
		Category:    query.Sentinel(values.Get("category")),
		Tags:        query.List(strings.ToLower(values.Get("tags"))),
		Author:      strings.TrimSpace(values.Get("author")),
		Search:      strings.TrimSpace(values.Get("search")),
		Sort:        query.ParseSort(values, sortFields, defaultSort),
		Page:        query.ParsePage(values),
	}
	if privileged {
		f.Status = query.Sentinel(values.Get("status"))
	}
	return f
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.VisibleOnly {
		q["isPublished"] = true
		q["status"] = StatusPublished
	}
	if f.Status != "" && !f.VisibleOnly {
		q["status"] = f.Status
	}
	if f.Featured {
		q["isFeatured"] = true
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags}
	}
	if f.Author != "" {
		q["author.name"] = query.Regex(f.Author)
	}
	if clauses := query.Search(f.Search, searchFields...); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

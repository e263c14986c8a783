package contacts

import (
	"net/url"
	"strings"
	"time"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	Status          string
	Priority        string
	Source          string
	Industry        string
	ServiceInterest []string
	// Spam is nil when spam and non-spam entries are both wanted.
	Spam   *bool
	Search string
	From   time.Time
	To     time.Time
	Sort   []query.Sort
	Page   query.Page
}

var sortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"name":      "name",
	"status":    "status",
	"priority":  "priority",
}

var defaultSort = []query.Sort{{Field: "createdAt", Desc: true}}

var searchFields = []string{"name", "email", "company", "message"}

func ParseListFilter(values url.Values) ListFilter {
	f := ListFilter{
		Status:          query.Sentinel(values.Get("status")),
		Priority:        query.Sentinel(values.Get("priority")),
		Source:          query.Sentinel(values.Get("source")),
		Industry:        query.Sentinel(values.Get("industry")),
		ServiceInterest: query.List(values.Get("serviceInterest")),
		Search:          strings.TrimSpace(values.Get("search")),
		Sort:            query.ParseSort(values, sortFields, defaultSort),
		Page:            query.ParsePage(values),
	}
	if present, on := query.Flag(values, "spam"); present && query.Sentinel(values.Get("spam")) != "" {
		f.Spam = &on
	}
	if t, ok := query.Date(values, "from"); ok {
		f.From = t
	}
	if t, ok := query.Date(values, "to"); ok {
		f.To = t
	}
	return f
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.Source != "" {
		q["source"] = f.Source
	}
	if f.Industry != "" {
		q["industry"] = f.Industry
	}
	if len(f.ServiceInterest) > 0 {
		q["serviceInterest"] = bson.M{"$in": f.ServiceInterest}
	}
	if f.Spam != nil {
		q["isSpam"] = *f.Spam
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		rng := bson.M{}
		if !f.From.IsZero() {
			rng["$gte"] = f.From
		}
		if !f.To.IsZero() {
			rng["$lte"] = f.To
		}
		q["createdAt"] = rng
	}
	if clauses := query.Search(f.Search, searchFields...); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

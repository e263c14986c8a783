package services

import (
	"net/url"
	"strings"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	ActiveOnly bool
	Featured   bool
	Category   string
	Search     string
	Sort       []query.Sort
	Page       query.Page
}

var sortFields = map[string]string{
	"order":     "order",
	"title":     "title",
	"createdAt": "createdAt",
	"price":     "pricing.startingPrice",
}

var defaultSort = []query.Sort{
	{Field: "order"},
	{Field: "createdAt", Desc: true},
}

func ParseListFilter(values url.Values, privileged bool) ListFilter {
	return ListFilter{
		ActiveOnly: query.Visible(values, "active", privileged, true),
		Featured:   query.IsTrue(values, "featured"),
		Category:   query.Sentinel(values.Get("category")),
		Search:     strings.TrimSpace(values.Get("search")),
		Sort:       query.ParseSort(values, sortFields, defaultSort),
		Page:       query.ParsePage(values),
	}
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.ActiveOnly {
		q["isActive"] = true
	}
	if f.Featured {
		q["isFeatured"] = true
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if clauses := query.Search(f.Search, "title", "description"); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

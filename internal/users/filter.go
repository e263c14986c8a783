package users

import (
	"net/url"
	"strings"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
)

type ListFilter struct {
	Role string
	// Active is nil when both active and inactive users are wanted.
	Active *bool
	Search string
	Page   query.Page
}

func ParseListFilter(values url.Values) ListFilter {
	f := ListFilter{
		Role:   query.Sentinel(values.Get("role")),
		Search: strings.TrimSpace(values.Get("search")),
		Page:   query.ParsePage(values),
	}
	if present, on := query.Flag(values, "active"); present && query.Sentinel(values.Get("active")) != "" {
		f.Active = &on
	}
	return f
}

func (f ListFilter) BSON() bson.M {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Active != nil {
		q["isActive"] = *f.Active
	}
	if clauses := query.Search(f.Search, "name", "email"); clauses != nil {
		q["$or"] = clauses
	}
	return q
}

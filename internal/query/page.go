package query

import (
	"math"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page is a 1-based page request. Limit 0 means the whole matching set.
type Page struct {
	Number int64
	Limit  int64
}

func ParsePage(values url.Values) Page {
	p := Page{
		Number: Int(values, "page", 1),
		Limit:  Int(values, "limit", 0),
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit == 0 {
		p.Number = 1
	}
	return p
}

// Skip saturates at math.MaxInt64 so page numbers far past the end still
// yield an empty, non-negative window.
func (p Page) Skip() int64 {
	if p.Limit <= 0 || p.Number <= 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Limit
}

// Apply sets skip and limit on opts.
func (p Page) Apply(opts *options.FindOptions) *options.FindOptions {
	if p.Limit <= 0 {
		return opts
	}
	return opts.SetSkip(p.Skip()).SetLimit(p.Limit)
}

type Pagination struct {
	Page    int64 `json:"page"`
	Limit   int64 `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination derives page count and navigation flags from the count query.
func NewPagination(p Page, total int64) Pagination {
	out := Pagination{Page: p.Number, Limit: p.Limit, Total: total}
	if p.Limit <= 0 {
		if total > 0 {
			out.Pages = 1
		}
		return out
	}
	out.Pages = total / p.Limit
	if total%p.Limit != 0 {
		out.Pages++
	}
	out.HasNext = p.Number < out.Pages
	out.HasPrev = p.Number > 1
	return out
}

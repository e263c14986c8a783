package query

import (
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads sortBy (or sort) and order. allowed maps public parameter
// names to document fields; anything outside it yields def. When order is
// missing the direction of def's first key is kept.
func ParseSort(values url.Values, allowed map[string]string, def []Sort) []Sort {
	name := strings.TrimSpace(values.Get("sortBy"))
	if name == "" {
		name = strings.TrimSpace(values.Get("sort"))
	}
	order := strings.ToLower(strings.TrimSpace(values.Get("order")))

	if strings.HasPrefix(name, "-") {
		name = name[1:]
		if order == "" {
			order = "desc"
		}
	}

	field, ok := allowed[name]
	if !ok {
		if len(def) > 0 && (order == "asc" || order == "desc") {
			out := append([]Sort{}, def...)
			out[0].Desc = order == "desc"
			return out
		}
		return def
	}

	desc := true
	if len(def) > 0 {
		desc = def[0].Desc
	}
	switch order {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}
	return []Sort{{Field: field, Desc: desc}}
}

func SortBSON(sorts []Sort) bson.D {
	d := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		dir := 1
		if s.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: s.Field, Value: dir})
	}
	return d
}

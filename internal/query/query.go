// Package query turns list-endpoint query strings into filter, sort and
// pagination options. Unrecognised parameters are ignored and
// malformed values fall back to defaults instead of failing the request.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All is the sentinel meaning "no filter" for category-like parameters.
const All = "all"

// Flag reports whether key is present and whether it is the literal "true".
func Flag(values url.Values, key string) (present bool, on bool) {
	if _, ok := values[key]; !ok {
		return false, false
	}
	return true, strings.TrimSpace(values.Get(key)) == "true"
}

// IsTrue is Flag without the presence bit.
func IsTrue(values url.Values, key string) bool {
	_, on := Flag(values, key)
	return on
}

// Visible decides whether a list must be restricted to publicly visible
// entries. Unprivileged callers always are. Privileged callers are restricted
// when they send "true", and when they omit the flag on resources whose
// public default is opt-out (defaultVisible); any other value lifts the filter.
func Visible(values url.Values, key string, privileged, defaultVisible bool) bool {
	if !privileged {
		return true
	}
	present, on := Flag(values, key)
	if !present {
		return defaultVisible
	}
	return on
}

// Sentinel trims value and maps the "all" sentinel to no filter.
func Sentinel(value string) string {
	value = strings.TrimSpace(value)
	if value == All {
		return ""
	}
	return value
}

// List splits a comma-separated parameter, dropping blanks and the sentinel.
func List(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = Sentinel(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Regex is a case-insensitive substring match on the literal term.
func Regex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// Search builds the $or clauses matching term in any of fields.
func Search(term string, fields ...string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	clauses := make(bson.A, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: Regex(term)})
	}
	return clauses
}

// Int parses a base-10 integer parameter, returning fallback on any error.
func Int(values url.Values, key string, fallback int64) int64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// Date parses RFC3339 or YYYY-MM-DD; ok is false when absent or malformed.
func Date(values url.Values, key string) (time.Time, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

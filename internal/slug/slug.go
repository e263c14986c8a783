// Package slug derives URL slugs from titles. Blogs and case studies use
// different rules and must not be unified.
package slug

import (
	"regexp"
	"strings"
)

var (
	blogInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
	multiDash   = regexp.MustCompile(`-+`)

	caseStudyInvalid = regexp.MustCompile(`[^a-z0-9\s]`)
)

// Blog lowercases, strips everything but alphanumerics, whitespace and
// hyphens, turns whitespace runs into hyphens, collapses repeated hyphens and
// trims edge hyphens.
func Blog(title string) string {
	s := strings.ToLower(title)
	s = blogInvalid.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CaseStudy lowercases, strips non-alphanumerics (hyphens included) and turns
// whitespace runs into hyphens. No collapsing or trimming.
func CaseStudy(title string) string {
	s := strings.ToLower(title)
	s = caseStudyInvalid.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, "-")
}

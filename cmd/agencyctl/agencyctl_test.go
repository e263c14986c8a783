package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"agency-backend/internal/adminstate"
	"agency-backend/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	values, err := parseParams([]string{"category=SEO", "tags=a", "tags=b", "search=x=y"})
	require.NoError(t, err)
	assert.Equal(t, "SEO", values.Get("category"))
	assert.Equal(t, []string{"a", "b"}, values["tags"])
	assert.Equal(t, "x=y", values.Get("search"))

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=v"})
	assert.Error(t, err)
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	s := adminstate.Reduce(adminstate.State{}, adminstate.DashboardLoaded{
		At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Stats: analytics.Dashboard{
			Contacts: analytics.ContactStats{Total: 12, New: 3, Growth: 50, ConversionRate: 25},
			Blogs:    analytics.BlogStats{Total: 4, TotalViews: 900},
			RecentContacts: []analytics.Event{
				{Title: "Ada Lovelace", Status: "new", CreatedAt: time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)},
			},
		},
	})
	render(&buf, s)

	out := buf.String()
	assert.Contains(t, out, "2026-03-01T09:00:00Z")
	assert.Contains(t, out, "12 total")
	assert.Contains(t, out, "+50.0% growth")
	assert.Contains(t, out, "900 views")
	assert.Contains(t, out, "Ada Lovelace")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, adminstate.Reduce(adminstate.State{}, adminstate.SetError{Err: errors.New("timeout")}))
	assert.Equal(t, "refresh failed: timeout\n", buf.String())
}

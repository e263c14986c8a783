// Package adminstate is the state container behind the admin tooling. All
// changes go through Reduce, so a State is never mutated in place.
package adminstate

import (
	"time"

	"agency-backend/internal/analytics"
	"agency-backend/internal/blogs"
	"agency-backend/internal/contacts"
)

type State struct {
	Loading       bool
	Error         string
	Dashboard     *analytics.Dashboard
	Blogs         []blogs.Blog
	BlogsTotal    int64
	Contacts      []contacts.Contact
	ContactsTotal int64
	UpdatedAt     time.Time
}

// Action is the closed set of state transitions.
type Action interface {
	action()
}

type SetLoading struct{ Loading bool }

type SetError struct{ Err error }

type DashboardLoaded struct {
	Stats analytics.Dashboard
	At    time.Time
}

type BlogsLoaded struct {
	Items []blogs.Blog
	Total int64
}

type BlogUpdated struct{ Blog blogs.Blog }

type BlogRemoved struct{ ID string }

type ContactsLoaded struct {
	Items []contacts.Contact
	Total int64
}

type ContactUpdated struct{ Contact contacts.Contact }

type Reset struct{}

func (SetLoading) action()      {}
func (SetError) action()        {}
func (DashboardLoaded) action() {}
func (BlogsLoaded) action()     {}
func (BlogUpdated) action()     {}
func (BlogRemoved) action()     {}
func (ContactsLoaded) action()  {}
func (ContactUpdated) action()  {}
func (Reset) action()           {}

// Reduce returns the state that results from applying a to s. Slices in the
// result never alias slices in s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading
		if a.Loading {
			s.Error = ""
		}
	case SetError:
		s.Loading = false
		s.Error = ""
		if a.Err != nil {
			s.Error = a.Err.Error()
		}
	case DashboardLoaded:
		stats := a.Stats
		s.Dashboard = &stats
		s.Loading = false
		s.Error = ""
		s.UpdatedAt = a.At
	case BlogsLoaded:
		s.Blogs = append([]blogs.Blog(nil), a.Items...)
		s.BlogsTotal = a.Total
		s.Loading = false
		s.Error = ""
	case BlogUpdated:
		s.Blogs = replaceBlog(s.Blogs, a.Blog)
	case BlogRemoved:
		s.Blogs, s.BlogsTotal = removeBlog(s.Blogs, s.BlogsTotal, a.ID)
	case ContactsLoaded:
		s.Contacts = append([]contacts.Contact(nil), a.Items...)
		s.ContactsTotal = a.Total
		s.Loading = false
		s.Error = ""
	case ContactUpdated:
		s.Contacts = replaceContact(s.Contacts, a.Contact)
	case Reset:
		return State{}
	}
	return s
}

func replaceBlog(items []blogs.Blog, b blogs.Blog) []blogs.Blog {
	out := make([]blogs.Blog, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == b.ID {
			out[i] = b
			return out
		}
	}
	return append([]blogs.Blog{b}, out...)
}

func removeBlog(items []blogs.Blog, total int64, id string) ([]blogs.Blog, int64) {
	out := make([]blogs.Blog, 0, len(items))
	for _, b := range items {
		if b.ID != id {
			out = append(out, b)
		}
	}
	if len(out) < len(items) && total > 0 {
		total--
	}
	return out, total
}

func replaceContact(items []contacts.Contact, c contacts.Contact) []contacts.Contact {
	out := make([]contacts.Contact, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == c.ID {
			out[i] = c
			return out
		}
	}
	return out
}

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"agency-backend/internal/analytics"
	"agency-backend/internal/blogs"
	"agency-backend/internal/casestudies"
	"agency-backend/internal/contacts"
	"agency-backend/internal/services"
	"agency-backend/internal/testimonials"
	"agency-backend/internal/users"
)

// crud is the list/get/create/update/delete/toggle surface shared by the
// content resources.
type crud[T any] struct {
	c    *Client
	path string
}

func newCRUD[T any](c *Client, path string) crud[T] {
	return crud[T]{c: c, path: path}
}

func (r crud[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r crud[T]) List(ctx context.Context, params url.Values) ([]T, Page, error) {
	var items []T
	page, err := r.c.list(ctx, r.path, params, &items)
	return items, page, err
}

func (r crud[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.c.call(ctx, http.MethodGet, r.item(id), nil, nil, &item)
	return item, err
}

func (r crud[T]) Create(ctx context.Context, body interface{}) (T, error) {
	var item T
	err := r.c.call(ctx, http.MethodPost, r.path, nil, body, &item)
	return item, err
}

func (r crud[T]) Update(ctx context.Context, id string, body interface{}) (T, error) {
	var item T
	err := r.c.call(ctx, http.MethodPut, r.item(id), nil, body, &item)
	return item, err
}

func (r crud[T]) Delete(ctx context.Context, id string) error {
	return r.c.call(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r crud[T]) Toggle(ctx context.Context, id string) (T, error) {
	var item T
	err := r.c.call(ctx, http.MethodPatch, r.item(id)+"/toggle", nil, nil, &item)
	return item, err
}

type AuthAPI struct {
	c *Client
}

// Login stores the issued token for subsequent calls.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (users.LoginResult, error) {
	var res users.LoginResult
	err := a.c.call(ctx, http.MethodPost, "/auth/login", nil, users.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return users.LoginResult{}, err
	}
	if err := a.c.tokens.SetToken(res.Token); err != nil {
		return users.LoginResult{}, err
	}
	return res, nil
}

func (a *AuthAPI) Logout() error {
	return a.c.tokens.Clear()
}

func (a *AuthAPI) Me(ctx context.Context) (users.User, error) {
	var u users.User
	err := a.c.call(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

func (a *AuthAPI) ChangePassword(ctx context.Context, current, next string) error {
	return a.c.call(ctx, http.MethodPut, "/auth/password", nil,
		users.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

type BlogsAPI struct {
	crud[blogs.Blog]
}

// Preview reads a post without visibility gating or view counting. Admin only.
func (b *BlogsAPI) Preview(ctx context.Context, slugOrID string) (blogs.Blog, error) {
	var item blogs.Blog
	err := b.c.call(ctx, http.MethodGet, b.item(slugOrID), url.Values{"preview": {"true"}}, nil, &item)
	return item, err
}

func (b *BlogsAPI) Like(ctx context.Context, id string) (int64, error) {
	var out struct {
		Likes int64 `json:"likes"`
	}
	err := b.c.call(ctx, http.MethodPatch, b.item(id)+"/like", nil, nil, &out)
	return out.Likes, err
}

func (b *BlogsAPI) Comment(ctx context.Context, id string, req blogs.CommentRequest) (blogs.Comment, error) {
	var c blogs.Comment
	err := b.c.call(ctx, http.MethodPost, b.item(id)+"/comments", nil, req, &c)
	return c, err
}

func (b *BlogsAPI) ApproveComment(ctx context.Context, id, commentID string) (blogs.Blog, error) {
	var item blogs.Blog
	err := b.c.call(ctx, http.MethodPatch, b.item(id)+"/comments/"+url.PathEscape(commentID)+"/approve", nil, nil, &item)
	return item, err
}

type CaseStudiesAPI struct {
	crud[casestudies.CaseStudy]
}

type ServicesAPI struct {
	crud[services.Service]
}

func (s *ServicesAPI) Reorder(ctx context.Context, positions []services.Position) error {
	return s.c.call(ctx, http.MethodPut, s.path+"/reorder", nil, positions, nil)
}

type TestimonialsAPI struct {
	crud[testimonials.Testimonial]
}

func (t *TestimonialsAPI) Verify(ctx context.Context, id, status string) (testimonials.Testimonial, error) {
	var item testimonials.Testimonial
	err := t.c.call(ctx, http.MethodPatch, t.item(id)+"/verify", nil, testimonials.VerifyRequest{Status: status}, &item)
	return item, err
}

type ContactsAPI struct {
	r crud[contacts.Contact]
}

// Submit posts the public contact form.
func (c *ContactsAPI) Submit(ctx context.Context, req contacts.SubmitRequest) (contacts.Contact, error) {
	return c.r.Create(ctx, req)
}

func (c *ContactsAPI) List(ctx context.Context, params url.Values) ([]contacts.Contact, Page, error) {
	return c.r.List(ctx, params)
}

func (c *ContactsAPI) Get(ctx context.Context, id string) (contacts.Contact, error) {
	return c.r.Get(ctx, id)
}

func (c *ContactsAPI) Update(ctx context.Context, id string, req contacts.UpdateRequest) (contacts.Contact, error) {
	return c.r.Update(ctx, id, req)
}

func (c *ContactsAPI) Delete(ctx context.Context, id string) error {
	return c.r.Delete(ctx, id)
}

type UsersAPI struct {
	r crud[users.User]
}

func (u *UsersAPI) List(ctx context.Context, params url.Values) ([]users.User, Page, error) {
	return u.r.List(ctx, params)
}

func (u *UsersAPI) Create(ctx context.Context, req users.CreateRequest) (users.User, error) {
	return u.r.Create(ctx, req)
}

func (u *UsersAPI) Update(ctx context.Context, id string, req users.UpdateRequest) (users.User, error) {
	return u.r.Update(ctx, id, req)
}

func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	return u.r.Delete(ctx, id)
}

type DashboardAPI struct {
	c *Client
}

func (d *DashboardAPI) Stats(ctx context.Context) (analytics.Dashboard, error) {
	var out analytics.Dashboard
	err := d.c.call(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out)
	return out, err
}

func (d *DashboardAPI) ContactAnalytics(ctx context.Context, months int) (analytics.ContactReport, error) {
	var out analytics.ContactReport
	var params url.Values
	if months > 0 {
		params = url.Values{"months": {strconv.Itoa(months)}}
	}
	err := d.c.call(ctx, http.MethodGet, "/dashboard/contacts/analytics", params, nil, &out)
	return out, err
}

func (d *DashboardAPI) Performance(ctx context.Context) (analytics.PerformanceReport, error) {
	var out analytics.PerformanceReport
	err := d.c.call(ctx, http.MethodGet, "/dashboard/performance", nil, nil, &out)
	return out, err
}

func (d *DashboardAPI) Activity(ctx context.Context, limit int) ([]analytics.Event, error) {
	var out []analytics.Event
	var params url.Values
	if limit > 0 {
		params = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	err := d.c.call(ctx, http.MethodGet, "/dashboard/activity", params, nil, &out)
	return out, err
}

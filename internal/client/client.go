package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agency-backend/internal/blogs"
	"agency-backend/internal/casestudies"
	"agency-backend/internal/contacts"
	"agency-backend/internal/query"
	"agency-backend/internal/services"
	"agency-backend/internal/testimonials"
	"agency-backend/internal/users"
	"agency-backend/internal/validation"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Details []validation.FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%d %s: %s %s", e.Status, e.Message, e.Details[0].Field, e.Details[0].Message)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

type envelope struct {
	Success    bool                    `json:"success"`
	Data       json.RawMessage         `json:"data"`
	Message    string                  `json:"message"`
	Error      string                  `json:"error"`
	Details    []validation.FieldError `json:"details"`
	Count      *int                    `json:"count"`
	Total      *int64                  `json:"total"`
	Pagination *query.Pagination       `json:"pagination"`
}

// Page carries the list metadata of a list response.
type Page struct {
	Count      int
	Total      int64
	Pagination query.Pagination
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// WithOnUnauthorized registers the hook run after any 401 response, once the
// stored token has been cleared.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithAdminKey sends the server's static admin key on every call.
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

type Client struct {
	base           *url.URL
	http           *http.Client
	tokens         TokenStore
	onUnauthorized func()
	adminKey       string

	Auth         *AuthAPI
	Blogs        *BlogsAPI
	CaseStudies  *CaseStudiesAPI
	Services     *ServicesAPI
	Testimonials *TestimonialsAPI
	Contacts     *ContactsAPI
	Users        *UsersAPI
	Dashboard    *DashboardAPI
}

// New builds a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: 15 * time.Second},
		tokens: NewMemoryTokenStore(""),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Blogs = &BlogsAPI{crud: newCRUD[blogs.Blog](c, "/blogs")}
	c.CaseStudies = &CaseStudiesAPI{crud: newCRUD[casestudies.CaseStudy](c, "/case-studies")}
	c.Services = &ServicesAPI{crud: newCRUD[services.Service](c, "/services")}
	c.Testimonials = &TestimonialsAPI{crud: newCRUD[testimonials.Testimonial](c, "/testimonials")}
	c.Contacts = &ContactsAPI{r: newCRUD[contacts.Contact](c, "/contact")}
	c.Users = &UsersAPI{r: newCRUD[users.User](c, "/users")}
	c.Dashboard = &DashboardAPI{c: c}
	return c, nil
}

// endpoint joins the base URL with path, which arrives already escaped.
func (c *Client) endpoint(path string, params url.Values) (string, error) {
	u := *c.base
	escaped := c.base.EscapedPath() + path
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("client: bad path %q: %w", path, err)
	}
	u.Path, u.RawPath = unescaped, escaped
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// do sends one request and decodes the envelope. On 401 the stored token is
// cleared and the unauthorized hook runs, whatever the call was.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target, err := c.endpoint(path, params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminKey != "" {
		req.Header.Set("X-Admin-Key", c.adminKey)
	}
	if token, err := c.tokens.Token(); err != nil {
		return nil, fmt.Errorf("client: read token: %w", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Error, Details: env.Details}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("client: decode response: %w", decodeErr)
	}
	return &env, nil
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	env, err := c.do(ctx, method, path, params, body)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}
	return nil
}

func (c *Client) list(ctx context.Context, path string, params url.Values, out interface{}) (Page, error) {
	env, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return Page{}, err
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return Page{}, fmt.Errorf("client: decode data: %w", err)
	}
	var p Page
	if env.Count != nil {
		p.Count = *env.Count
	}
	if env.Total != nil {
		p.Total = *env.Total
	}
	if env.Pagination != nil {
		p.Pagination = *env.Pagination
	}
	return p, nil
}

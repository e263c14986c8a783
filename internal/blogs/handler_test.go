package blogs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agency-backend/internal/logging"
	"agency-backend/internal/middleware"
	"agency-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminKey = "test-admin-key"

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details"`
	Count   *int                    `json:"count"`
	Total   *int64                  `json:"total"`
}

func newTestRouter(repo Repository) http.Handler {
	svc := NewService(repo, validation.New(), time.UTC)
	h := NewHandler(svc, logging.Discard())
	r := chi.NewRouter()
	h.Mount(r, &middleware.Authenticator{AdminKey: adminKey}, nil)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, admin bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if admin {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestCreateDerivesSlugAndReadTime(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec, env := do(t, router, http.MethodPost, "/blogs", map[string]interface{}{
		"title":    "Hello World!!",
		"excerpt":  "A short excerpt",
		"content":  words(210),
		"category": "Technology",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got Blog
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "hello-world", got.Slug)
	assert.Equal(t, 2, got.ReadTime)
	assert.Equal(t, StatusDraft, got.Status)
	assert.False(t, got.IsPublished)
	assert.Nil(t, got.PublishedAt)
	assert.Equal(t, "Admin", got.Author.Name)
}

func TestCreateValidationDetails(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec, env := do(t, router, http.MethodPost, "/blogs", map[string]interface{}{
		"title":    "Valid title",
		"content":  "body",
		"category": "Gardening",
		"seo":      map[string]string{"metaTitle": strings.Repeat("x", 61)},
	}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	fields := map[string]string{}
	for _, d := range env.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "excerpt is required", fields["excerpt"])
	assert.Contains(t, fields["category"], "must be one of")
	assert.Equal(t, "metaTitle cannot exceed 60 characters", fields["seo.metaTitle"])
}

func TestCreateRequiresAdmin(t *testing.T) {
	router := newTestRouter(newMemoryRepo())
	rec, env := do(t, router, http.MethodPost, "/blogs", map[string]string{"title": "x"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestToggleKeepsFirstPublishedAt(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	_, env := do(t, router, http.MethodPost, "/blogs", map[string]interface{}{
		"title": "Toggle me", "excerpt": "e", "content": "c", "category": "SEO",
	}, true)
	var created Blog
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := do(t, router, http.MethodPatch, "/blogs/"+created.ID+"/toggle", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var first Blog
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.True(t, first.IsPublished)
	assert.Equal(t, StatusPublished, first.Status)
	require.NotNil(t, first.PublishedAt)

	_, env = do(t, router, http.MethodPatch, "/blogs/"+created.ID+"/toggle", nil, true)
	var second Blog
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.False(t, second.IsPublished)
	assert.Equal(t, StatusDraft, second.Status)
	require.NotNil(t, second.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(*second.PublishedAt))

	_, env = do(t, router, http.MethodPatch, "/blogs/"+created.ID+"/toggle", nil, true)
	var third Blog
	require.NoError(t, json.Unmarshal(env.Data, &third))
	assert.True(t, first.PublishedAt.Equal(*third.PublishedAt))
}

func seeded() (*memoryRepo, Blog, Blog) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pub := Blog{
		ID: "64b000000000000000000001", Title: "Live", Slug: "live", Status: StatusPublished,
		IsPublished: true, Category: "SEO", CreatedAt: now, Views: 3,
		Comments: []Comment{
			{ID: "c1", Name: "a", Message: "ok", IsApproved: true},
			{ID: "c2", Name: "b", Message: "pending"},
		},
	}
	draft := Blog{
		ID: "64b000000000000000000002", Title: "Hidden", Slug: "hidden", Status: StatusDraft,
		Category: "SEO", CreatedAt: now.Add(time.Hour),
	}
	return newMemoryRepo(pub, draft), pub, draft
}

func TestGetVisibilityAndViews(t *testing.T) {
	repo, pub, draft := seeded()
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodGet, "/blogs/hidden", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, missing := do(t, router, http.MethodGet, "/blogs/nope", nil, false)
	assert.Equal(t, missing.Error, env.Error)

	rec, _ = do(t, router, http.MethodGet, "/blogs/hidden", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	for i := 1; i <= 2; i++ {
		rec, env = do(t, router, http.MethodGet, "/blogs/live", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)
		var got Blog
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, pub.Views+int64(i), got.Views)
		assert.Len(t, got.Comments, 1)
	}

	_, _ = do(t, router, http.MethodGet, "/blogs/live?preview=true", nil, true)
	stored, _ := repo.GetByID(context.Background(), pub.ID)
	assert.Equal(t, pub.Views+2, stored.Views)

	stored, _ = repo.GetByID(context.Background(), draft.ID)
	assert.Zero(t, stored.Views)
}

func TestGetSucceedsWhenViewIncrementFails(t *testing.T) {
	repo, pub, _ := seeded()
	repo.failViews = true
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodGet, "/blogs/live", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Blog
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, pub.Views, got.Views)
}

func TestListVisibility(t *testing.T) {
	repo, _, _ := seeded()
	router := newTestRouter(repo)

	_, env := do(t, router, http.MethodGet, "/blogs?published=false", nil, false)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	_, env = do(t, router, http.MethodGet, "/blogs", nil, true)
	assert.Equal(t, 1, *env.Count)

	_, env = do(t, router, http.MethodGet, "/blogs?published=all", nil, true)
	assert.Equal(t, 2, *env.Count)
	assert.Equal(t, int64(2), *env.Total)

	_, env = do(t, router, http.MethodGet, "/blogs?published=all&limit=1&page=2", nil, true)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, int64(2), *env.Total)
}

func TestCommentsAndApproval(t *testing.T) {
	repo, pub, draft := seeded()
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodPost, "/blogs/"+pub.ID+"/comments", map[string]string{
		"name": "Reader", "email": "Reader@Example.com", "message": "Great post",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c Comment
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.False(t, c.IsApproved)
	assert.Equal(t, "reader@example.com", c.Email)

	rec, _ = do(t, router, http.MethodPost, "/blogs/"+draft.ID+"/comments", map[string]string{
		"name": "Reader", "email": "reader@example.com", "message": "hi",
	}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/blogs/"+pub.ID+"/comments", map[string]string{
		"name": "Reader", "email": "not-an-email", "message": "hi",
	}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodPatch, "/blogs/"+pub.ID+"/comments/"+c.ID+"/approve", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated Blog
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	approved := 0
	for _, cm := range updated.Comments {
		if cm.IsApproved {
			approved++
		}
	}
	assert.Equal(t, 2, approved)

	rec, _ = do(t, router, http.MethodPatch, "/blogs/"+pub.ID+"/comments/missing/approve", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeAndDelete(t *testing.T) {
	repo, pub, _ := seeded()
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodPatch, "/blogs/"+pub.ID+"/like", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"likes":1}`, string(env.Data))

	rec, _ = do(t, router, http.MethodDelete, "/blogs/"+pub.ID, nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, router, http.MethodDelete, "/blogs/"+pub.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeHiddenPostLooksMissing(t *testing.T) {
	repo, _, draft := seeded()
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodPatch, "/blogs/"+draft.ID+"/like", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, missing := do(t, router, http.MethodPatch, "/blogs/64b0000000000000000000ff/like", nil, false)
	assert.Equal(t, missing.Error, env.Error)

	stored, _ := repo.GetByID(context.Background(), draft.ID)
	assert.Zero(t, stored.Likes)
}

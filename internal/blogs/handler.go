package blogs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agency-backend/internal/httpx"
	"agency-backend/internal/middleware"
	"agency-backend/internal/query"
	"agency-backend/internal/transport"
	"agency-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Mount registers the blog routes on r. comments may be nil to leave the
// comment route unthrottled.
func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator, comments func(http.Handler) http.Handler) {
	r.Route("/blogs", func(r chi.Router) {
		r.With(authn.Optional).Get("/", h.List)
		r.With(authn.Optional).Get("/{id}", h.Get)
		r.Patch("/{id}/like", h.Like)
		if comments != nil {
			r.With(comments).Post("/{id}/comments", h.AddComment)
		} else {
			r.Post("/{id}/comments", h.AddComment)
		}

		r.Group(func(r chi.Router) {
			r.Use(authn.Protect, middleware.AdminOnly)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/toggle", h.Toggle)
			r.Patch("/{id}/comments/{commentId}/approve", h.ApproveComment)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	filter := ParseListFilter(r.URL.Query(), middleware.IsAdmin(r.Context()))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, page, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("blogs list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("blogs list: ok", slog.Int("count", len(items)), slog.Int64("total", page.Total))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	key := httpx.Param(r, "id")
	privileged := middleware.IsAdmin(r.Context())
	preview := query.IsTrue(r.URL.Query(), "preview")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, viewErr, err := h.service.Read(ctx, key, privileged, preview)
	if err != nil {
		h.fail(w, log, "blogs get", err)
		return
	}
	if viewErr != nil {
		log.Warn("blogs get: view increment failed", slog.String("blog_id", item.ID), slog.String("error", viewErr.Error()))
	}

	log.Info("blogs get: ok", slog.String("slug", item.Slug), slog.Bool("preview", privileged && preview))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin blogs create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	author := ""
	if caller, ok := middleware.CallerFromContext(r.Context()); ok && caller.ID != "api-key" {
		author = caller.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req, author)
	if err != nil {
		h.fail(w, log, "admin blogs create", err)
		return
	}

	log.Info("admin blogs create: ok", slog.String("blog_id", item.ID), slog.String("slug", item.Slug))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin blogs update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin blogs update", err)
		return
	}

	log.Info("admin blogs update: ok", slog.String("blog_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.fail(w, log, "admin blogs delete", err)
		return
	}

	log.Info("admin blogs delete: ok", slog.String("blog_id", id))
	transport.WriteMessage(w, http.StatusOK, "Blog deleted successfully")
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Toggle(ctx, id)
	if err != nil {
		h.fail(w, log, "admin blogs toggle", err)
		return
	}

	log.Info("admin blogs toggle: ok", slog.String("blog_id", id), slog.Bool("published", item.IsPublished))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	likes, err := h.service.Like(ctx, id)
	if err != nil {
		h.fail(w, log, "blogs like", err)
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]int64{"likes": likes})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req CommentRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("blogs comment: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.service.AddComment(ctx, id, req)
	if err != nil {
		h.fail(w, log, "blogs comment", err)
		return
	}

	log.Info("blogs comment: ok", slog.String("blog_id", id), slog.String("comment_id", c.ID))
	transport.WriteJSON(w, http.StatusCreated, transport.Envelope{
		Success: true,
		Data:    c,
		Message: "Comment submitted and awaiting approval",
	})
}

func (h *Handler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")
	commentID := httpx.Param(r, "commentId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.ApproveComment(ctx, id, commentID)
	if err != nil {
		h.fail(w, log, "admin blogs approve comment", err)
		return
	}

	log.Info("admin blogs approve comment: ok", slog.String("blog_id", id), slog.String("comment_id", commentID))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		log.Warn(op + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "Blog not found", nil)
	case errors.Is(err, ErrCommentNotFound):
		log.Warn(op + ": comment not found")
		transport.WriteError(w, http.StatusNotFound, "Comment not found", nil)
	case errors.Is(err, ErrSlugExists):
		log.Warn(op + ": slug exists")
		transport.WriteError(w, http.StatusConflict, "A blog with this slug already exists", nil)
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

package testimonials

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agency-backend/internal/cache"
	"agency-backend/internal/httpx"
	"agency-backend/internal/middleware"
	"agency-backend/internal/transport"
	"agency-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

const cachePrefix = "testimonials:"

type Handler struct {
	service  *Service
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewHandler(service *Service, c cache.Cache, ttl time.Duration, log *slog.Logger) *Handler {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Handler{
		service:  service,
		cache:    c,
		cacheTTL: ttl,
		log:      log,
	}
}

func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/testimonials", func(r chi.Router) {
		r.With(authn.Optional).Get("/", h.List)
		r.With(authn.Optional).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authn.Protect, middleware.AdminOnly)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/toggle", h.Toggle)
			r.Patch("/{id}/verify", h.Verify)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	privileged := middleware.IsAdmin(r.Context())
	values := r.URL.Query()

	// Only anonymous lists are cached.
	cacheKey := cachePrefix + "list:" + values.Encode()
	if !privileged {
		if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("testimonials list: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, page, err := h.service.List(ctx, ParseListFilter(values, privileged))
	if err != nil {
		log.Error("testimonials list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if !privileged {
		if payload, err := transport.ListBody(items, len(items), page); err == nil {
			if err := h.cache.Set(r.Context(), cacheKey, payload, h.cacheTTL); err != nil {
				log.Warn("testimonials list: cache set failed", slog.String("error", err.Error()))
			}
		}
	}

	log.Info("testimonials list: ok", slog.Int("count", len(items)))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.fail(w, log, "testimonials get", err)
		return
	}
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin testimonials create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.fail(w, log, "admin testimonials create", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin testimonials create: ok", slog.String("testimonial_id", item.ID))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin testimonials update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin testimonials update", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin testimonials update: ok", slog.String("testimonial_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.fail(w, log, "admin testimonials delete", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin testimonials delete: ok", slog.String("testimonial_id", id))
	transport.WriteMessage(w, http.StatusOK, "Testimonial deleted successfully")
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Toggle(ctx, id)
	if err != nil {
		h.fail(w, log, "admin testimonials toggle", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin testimonials toggle: ok", slog.String("testimonial_id", id), slog.Bool("published", item.IsPublished))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req VerifyRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin testimonials verify: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Verify(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin testimonials verify", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin testimonials verify: ok", slog.String("testimonial_id", id), slog.String("status", item.VerificationStatus))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) invalidate(r *http.Request, log *slog.Logger) {
	if err := h.cache.DeletePrefix(r.Context(), cachePrefix); err != nil {
		log.Warn("testimonials: cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		log.Warn(op + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "Testimonial not found", nil)
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

package services

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

const cachePrefix = "services:"

type Handler struct {
	catalog  *Catalog
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewHandler(catalog *Catalog, c cache.Cache, ttl time.Duration, log *slog.Logger) *Handler {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Handler{
		catalog:  catalog,
		cache:    c,
		cacheTTL: ttl,
		log:      log,
	}
}

func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/services", func(r chi.Router) {
		r.With(authn.Optional).Get("/", h.List)
		r.With(authn.Optional).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authn.Protect, middleware.AdminOnly)
			r.Post("/", h.Create)
			r.Put("/reorder", h.Reorder)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/toggle", h.Toggle)
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
			log.Info("services list: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, page, err := h.catalog.List(ctx, ParseListFilter(values, privileged))
	if err != nil {
		log.Error("services list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	if !privileged {
		if payload, err := transport.ListBody(items, len(items), page); err == nil {
			if err := h.cache.Set(r.Context(), cacheKey, payload, h.cacheTTL); err != nil {
				log.Warn("services list: cache set failed", slog.String("error", err.Error()))
			}
		}
	}

	log.Info("services list: ok", slog.Int("count", len(items)))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.catalog.Get(ctx, id, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.fail(w, log, "services get", err)
		return
	}
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin services create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.catalog.Create(ctx, req)
	if err != nil {
		h.fail(w, log, "admin services create", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin services create: ok", slog.String("service_id", item.ID))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin services update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.catalog.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin services update", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin services update: ok", slog.String("service_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.catalog.Delete(ctx, id); err != nil {
		h.fail(w, log, "admin services delete", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin services delete: ok", slog.String("service_id", id))
	transport.WriteMessage(w, http.StatusOK, "Service deleted successfully")
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.catalog.Toggle(ctx, id)
	if err != nil {
		h.fail(w, log, "admin services toggle", err)
		return
	}
	h.invalidate(r, log)

	log.Info("admin services toggle: ok", slog.String("service_id", id), slog.Bool("active", item.IsActive))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req []Position
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin services reorder: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	err := h.catalog.Reorder(ctx, req)
	h.invalidate(r, log)
	if err != nil {
		h.fail(w, log, "admin services reorder", err)
		return
	}

	log.Info("admin services reorder: ok", slog.Int("count", len(req)))
	transport.WriteMessage(w, http.StatusOK, "Services reordered successfully")
}

func (h *Handler) invalidate(r *http.Request, log *slog.Logger) {
	if err := h.cache.DeletePrefix(r.Context(), cachePrefix); err != nil {
		log.Warn("services: cache invalidation failed", slog.String("error", err.Error()))
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
		transport.WriteError(w, http.StatusNotFound, "Service not found", nil)
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

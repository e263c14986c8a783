package casestudies

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agency-backend/internal/httpx"
	"agency-backend/internal/middleware"
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

func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/case-studies", func(r chi.Router) {
		r.With(authn.Optional).Get("/", h.List)
		r.With(authn.Optional).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authn.Protect, middleware.AdminOnly)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/toggle", h.Toggle)
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
		log.Error("case studies list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("case studies list: ok", slog.Int("count", len(items)))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	key := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, viewErr, err := h.service.Read(ctx, key, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.fail(w, log, "case studies get", err)
		return
	}
	if viewErr != nil {
		log.Warn("case studies get: view increment failed", slog.String("case_study_id", item.ID), slog.String("error", viewErr.Error()))
	}

	log.Info("case studies get: ok", slog.String("case_study_id", item.ID))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin case studies create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.fail(w, log, "admin case studies create", err)
		return
	}

	log.Info("admin case studies create: ok", slog.String("case_study_id", item.ID), slog.String("slug", item.SEO.Slug))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin case studies update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin case studies update", err)
		return
	}

	log.Info("admin case studies update: ok", slog.String("case_study_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.fail(w, log, "admin case studies delete", err)
		return
	}

	log.Info("admin case studies delete: ok", slog.String("case_study_id", id))
	transport.WriteMessage(w, http.StatusOK, "Case study deleted successfully")
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Toggle(ctx, id)
	if err != nil {
		h.fail(w, log, "admin case studies toggle", err)
		return
	}

	log.Info("admin case studies toggle: ok", slog.String("case_study_id", id), slog.Bool("published", item.IsPublished))
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
		transport.WriteError(w, http.StatusNotFound, "Case study not found", nil)
	case errors.Is(err, ErrSlugExists):
		log.Warn(op + ": slug exists")
		transport.WriteError(w, http.StatusConflict, "A case study with this slug already exists", nil)
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

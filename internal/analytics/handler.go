package analytics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"agency-backend/internal/middleware"
	"agency-backend/internal/query"
	"agency-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(authn.Protect, middleware.AdminOnly)
		r.Get("/stats", h.Stats)
		r.Get("/contacts/analytics", h.Contacts)
		r.Get("/performance", h.Performance)
		r.Get("/activity", h.Activity)
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.service.DashboardStats(ctx)
	if err != nil {
		log.Error("admin dashboard stats: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}
	log.Info("admin dashboard stats: ok")
	transport.WriteData(w, http.StatusOK, stats)
}

func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	months := int(query.Int(r.URL.Query(), "months", defaultMonths))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.ContactAnalytics(ctx, months)
	if err != nil {
		log.Error("admin dashboard contacts: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}
	log.Info("admin dashboard contacts: ok", slog.Int("months", report.Months))
	transport.WriteData(w, http.StatusOK, report)
}

func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.Performance(ctx)
	if err != nil {
		log.Error("admin dashboard performance: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}
	log.Info("admin dashboard performance: ok")
	transport.WriteData(w, http.StatusOK, report)
}

func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit := int(query.Int(r.URL.Query(), "limit", defaultActivity))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	events, err := h.service.Activity(ctx, limit)
	if err != nil {
		log.Error("admin dashboard activity: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}
	log.Info("admin dashboard activity: ok", slog.Int("count", len(events)))
	transport.WriteData(w, http.StatusOK, events)
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

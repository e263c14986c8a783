package contacts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agency-backend/internal/httpx"
	"agency-backend/internal/middleware"
	"agency-backend/internal/notifications"
	"agency-backend/internal/transport"
	"agency-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

// Notifier is told about every stored submission.
type Notifier interface {
	ContactSubmitted(ctx context.Context, msg notifications.ContactMessage) error
}

type Handler struct {
	service  *Service
	notifier Notifier
	log      *slog.Logger
}

func NewHandler(service *Service, notifier Notifier, log *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		notifier: notifier,
		log:      log,
	}
}

// Mount registers the contact routes. submit throttles the public form and
// may be nil.
func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator, submit func(http.Handler) http.Handler) {
	r.Route("/contact", func(r chi.Router) {
		if submit != nil {
			r.With(submit).Post("/", h.Submit)
		} else {
			r.Post("/", h.Submit)
		}

		r.Group(func(r chi.Router) {
			r.Use(authn.Protect, middleware.AdminOnly)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req SubmitRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact submit: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Submit(ctx, req, Submitter{
		IPAddress: httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.fail(w, log, "contact submit", err)
		return
	}

	if h.notifier != nil {
		go h.notify(log, item)
	}

	log.Info("contact submit: ok", slog.String("contact_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, transport.Envelope{
		Success: true,
		Message: "Thank you for contacting us! We'll get back to you soon.",
		Data: map[string]interface{}{
			"id":        item.ID,
			"name":      item.Name,
			"email":     item.Email,
			"createdAt": item.CreatedAt,
		},
	})
}

func (h *Handler) notify(log *slog.Logger, item Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := h.notifier.ContactSubmitted(ctx, notifications.ContactMessage{
		ID:              item.ID,
		Name:            item.Name,
		Email:           item.Email,
		Phone:           item.Phone,
		Company:         item.Company,
		Subject:         item.Subject,
		Message:         item.Message,
		ServiceInterest: item.ServiceInterest,
		Budget:          item.Budget,
		Timeline:        item.Timeline,
	})
	if err != nil {
		log.Warn("contact submit: email failed", slog.String("contact_id", item.ID), slog.String("error", err.Error()))
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	filter := ParseListFilter(r.URL.Query())

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, page, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("admin contacts list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("admin contacts list: ok", slog.Int("count", len(items)))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		h.fail(w, log, "admin contacts get", err)
		return
	}
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin contacts update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin contacts update", err)
		return
	}

	log.Info("admin contacts update: ok", slog.String("contact_id", id), slog.String("status", item.Status))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.fail(w, log, "admin contacts delete", err)
		return
	}

	log.Info("admin contacts delete: ok", slog.String("contact_id", id))
	transport.WriteMessage(w, http.StatusOK, "Contact deleted successfully")
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		log.Warn(op + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "Contact not found", nil)
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

package users

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
	return &Handler{service: service, log: log}
}

// Mount registers /auth and /users. login may be nil.
func (h *Handler) Mount(r chi.Router, authn *middleware.Authenticator, login func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		if login != nil {
			r.With(login).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
		r.With(authn.Protect).Get("/me", h.Me)
		r.With(authn.Protect).Put("/password", h.ChangePassword)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authn.Protect, middleware.AdminOnly)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("auth login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.service.Login(ctx, req)
	if err != nil {
		h.fail(w, log, "auth login", err)
		return
	}

	log.Info("auth login: ok", slog.String("user_id", res.User.ID))
	transport.WriteData(w, http.StatusOK, res)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	caller, _ := middleware.CallerFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.Get(ctx, caller.ID)
	if err != nil {
		h.fail(w, log, "auth me", err)
		return
	}
	transport.WriteData(w, http.StatusOK, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	caller, _ := middleware.CallerFromContext(r.Context())

	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("auth password: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.ChangePassword(ctx, caller.ID, req); err != nil {
		h.fail(w, log, "auth password", err)
		return
	}

	log.Info("auth password: ok", slog.String("user_id", caller.ID))
	transport.WriteMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, page, err := h.service.List(ctx, ParseListFilter(r.URL.Query()))
	if err != nil {
		log.Error("admin users list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w)
		return
	}

	log.Info("admin users list: ok", slog.Int("count", len(items)))
	transport.WriteList(w, items, len(items), page)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	user, err := h.service.Create(ctx, req)
	if err != nil {
		h.fail(w, log, "admin users create", err)
		return
	}

	log.Info("admin users create: ok", slog.String("user_id", user.ID))
	transport.WriteData(w, http.StatusCreated, user)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	user, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(w, log, "admin users update", err)
		return
	}

	log.Info("admin users update: ok", slog.String("user_id", id))
	transport.WriteData(w, http.StatusOK, user)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := httpx.Param(r, "id")
	caller, _ := middleware.CallerFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id, caller.ID); err != nil {
		h.fail(w, log, "admin users delete", err)
		return
	}

	log.Info("admin users delete: ok", slog.String("user_id", id))
	transport.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		log.Warn(op + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrInvalidCredentials):
		log.Warn(op + ": invalid credentials")
		transport.WriteError(w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, ErrInactive):
		log.Warn(op + ": inactive account")
		transport.WriteError(w, http.StatusUnauthorized, "Account is deactivated", nil)
	case errors.Is(err, ErrWrongPassword):
		log.Warn(op + ": wrong current password")
		transport.WriteError(w, http.StatusBadRequest, "Current password is incorrect", nil)
	case errors.Is(err, ErrSelfDelete):
		log.Warn(op + ": self delete")
		transport.WriteError(w, http.StatusBadRequest, "You cannot delete your own account", nil)
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, ErrEmailExists):
		log.Warn(op + ": duplicate email")
		transport.WriteError(w, http.StatusConflict, "User already exists with this email", nil)
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

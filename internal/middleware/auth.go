package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"agency-backend/internal/auth"
	"agency-backend/internal/models"
	"agency-backend/internal/transport"
)

// Caller is the authenticated principal attached to a request.
type Caller struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.UserRoleAdmin
}

// UserLookup resolves a token subject to an active user.
type UserLookup interface {
	LookupCaller(ctx context.Context, id string) (Caller, error)
}

type callerKey struct{}

// WithCaller attaches c to ctx and records it for the access log when the
// request passed through Logger.
func WithCaller(ctx context.Context, c Caller) context.Context {
	if slot, ok := ctx.Value(accessSlotKey{}).(*accessSlot); ok {
		slot.caller, slot.known = c, true
	}
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// IsAdmin reports whether the request carries a valid admin credential.
func IsAdmin(ctx context.Context) bool {
	c, ok := CallerFromContext(ctx)
	return ok && c.IsAdmin()
}

type Authenticator struct {
	Tokens   *auth.Manager
	Users    UserLookup
	AdminKey string
}

// Protect rejects requests without a valid credential with 401.
func (a *Authenticator) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := a.resolve(r)
		if !ok {
			transport.WriteError(w, http.StatusUnauthorized, "Not authorized, no valid token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// Optional attaches the caller when a valid credential is present and never
// rejects.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller, ok := a.resolve(r); ok {
			r = r.WithContext(WithCaller(r.Context(), caller))
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly must run after Protect.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			transport.WriteError(w, http.StatusUnauthorized, "Not authorized, no valid token", nil)
			return
		}
		if !caller.IsAdmin() {
			transport.WriteError(w, http.StatusForbidden, "Access denied. Admin role required.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) resolve(r *http.Request) (Caller, bool) {
	if a == nil {
		return Caller{}, false
	}
	if a.AdminKey != "" {
		if key := r.Header.Get("X-Admin-Key"); key != "" &&
			subtle.ConstantTimeCompare([]byte(key), []byte(a.AdminKey)) == 1 {
			return Caller{ID: "api-key", Name: "api-key", Role: models.UserRoleAdmin}, true
		}
	}
	if a.Tokens == nil {
		return Caller{}, false
	}
	token := bearerToken(r)
	if token == "" {
		return Caller{}, false
	}
	claims, err := a.Tokens.Parse(token)
	if err != nil {
		return Caller{}, false
	}
	if a.Users == nil {
		return Caller{ID: claims.Subject, Role: claims.Role}, true
	}
	caller, err := a.Users.LookupCaller(r.Context(), claims.Subject)
	if err != nil {
		return Caller{}, false
	}
	return caller, true
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

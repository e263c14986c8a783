package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agency-backend/internal/auth"
)

type stubUsers map[string]Caller

func (s stubUsers) LookupCaller(ctx context.Context, id string) (Caller, error) {
	c, ok := s[id]
	if !ok {
		return Caller{}, errors.New("not found")
	}
	return c, nil
}

func newAuthenticator() *Authenticator {
	return &Authenticator{
		Tokens: &auth.Manager{Secret: []byte("s3cret"), TTL: time.Hour, Issuer: "test"},
		Users: stubUsers{
			"admin-1":  {ID: "admin-1", Role: "admin"},
			"editor-1": {ID: "editor-1", Role: "editor"},
		},
		AdminKey: "key-123",
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsAdmin(r.Context()) {
			w.Header().Set("X-Admin", "yes")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, token string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestProtectAndAdminOnly(t *testing.T) {
	a := newAuthenticator()
	h := a.Protect(AdminOnly(okHandler()))

	if rr := serve(h, "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
	if rr := serve(h, "garbage", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rr.Code)
	}

	editor, _ := a.Tokens.NewToken("editor-1", "editor")
	if rr := serve(h, editor, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor, got %d", rr.Code)
	}

	admin, _ := a.Tokens.NewToken("admin-1", "admin")
	if rr := serve(h, admin, nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}

	unknown, _ := a.Tokens.NewToken("deleted-user", "admin")
	if rr := serve(h, unknown, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", rr.Code)
	}

	if rr := serve(h, "", map[string]string{"X-Admin-Key": "key-123"}); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin key, got %d", rr.Code)
	}
}

func TestOptionalNeverRejects(t *testing.T) {
	a := newAuthenticator()
	h := a.Optional(okHandler())

	rr := serve(h, "garbage", nil)
	if rr.Code != http.StatusOK || rr.Header().Get("X-Admin") != "" {
		t.Fatalf("expected anonymous pass-through, got %d %q", rr.Code, rr.Header().Get("X-Admin"))
	}

	admin, _ := a.Tokens.NewToken("admin-1", "admin")
	rr = serve(h, admin, nil)
	if rr.Header().Get("X-Admin") != "yes" {
		t.Fatalf("expected admin caller to be attached")
	}
}

func TestRequestIDEchoesValidHeader(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := serve(h, "", map[string]string{RequestIDHeader: "not-a-uuid"})
	if seen == "" || seen == "not-a-uuid" {
		t.Fatalf("expected generated id, got %q", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected response header to echo id")
	}

	const id = "6f1c2a8e-3f0b-4d55-9a51-0f6a1d7c9b21"
	serve(h, "", map[string]string{RequestIDHeader: id})
	if seen != id {
		t.Fatalf("expected incoming id to be reused, got %q", seen)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	h := rl.Middleware(okHandler())
	for i := 0; i < 2; i++ {
		if rr := serve(h, "", nil); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
	if rr := serve(h, "", nil); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://site.test"})(okHandler())
	rr := serve(h, "", map[string]string{"Origin": "http://site.test"})
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://site.test" {
		t.Fatalf("expected allowed origin")
	}
	rr = serve(h, "", map[string]string{"Origin": "http://evil.test"})
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected no CORS header for unknown origin")
	}
}

func TestLoggerRecordsCallerAndStatusClass(t *testing.T) {
	var buf bytes.Buffer
	a := newAuthenticator()
	h := Logger(slog.New(slog.NewJSONHandler(&buf, nil)))(a.Protect(okHandler()))

	lastEntry := func() map[string]interface{} {
		t.Helper()
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		var entry map[string]interface{}
		if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		return entry
	}

	admin, _ := a.Tokens.NewToken("admin-1", "admin")
	if rr := serve(h, admin, nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}
	entry := lastEntry()
	if entry["level"] != "INFO" || entry["status_class"] != "2xx" {
		t.Fatalf("unexpected level/class: %v", entry)
	}
	if entry["caller_id"] != "admin-1" || entry["caller_role"] != "admin" {
		t.Fatalf("expected caller in access log, got %v", entry)
	}

	if rr := serve(h, "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
	entry = lastEntry()
	if entry["level"] != "WARN" || entry["status_class"] != "4xx" {
		t.Fatalf("unexpected level/class: %v", entry)
	}
	if _, ok := entry["caller_id"]; ok {
		t.Fatalf("anonymous request logged a caller: %v", entry)
	}
}

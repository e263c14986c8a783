package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	bytes, err := r.ResponseWriter.Write(b)
	r.bytes += bytes
	return bytes, err
}

// accessSlot carries the caller resolved deeper in the chain back out to
// Logger. Route middleware only sees a derived context.
type accessSlot struct {
	caller Caller
	known  bool
}

type accessSlotKey struct{}

// Logger writes one access line per request. 5xx log at error, 4xx at warn.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			slot := &accessSlot{}
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), accessSlotKey{}, slot)))
			duration := time.Since(start)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.String("status_class", strconv.Itoa(status/100)+"xx"),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", duration),
			}
			if slot.known {
				attrs = append(attrs,
					slog.String("caller_id", slot.caller.ID),
					slog.String("caller_role", slot.caller.Role),
				)
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			log.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}

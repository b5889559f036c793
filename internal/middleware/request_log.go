package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewLoggingMiddleware はリクエストごとに1行のJSON構造化ログ（http_request）を出力するミドルウェアを返す。
// CurrentUserMiddlewareの後に置くとuser_idが付く。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newResponseRecorder(w)

			next.ServeHTTP(rec, r)

			logger.LogAttrs(r.Context(), levelForStatus(rec.status), "http_request",
				requestAttrs(r, rec, time.Since(start))...)
		})
	}
}

// requestAttrs はリクエストログの属性を組み立てる。空の値は出力しない。
func requestAttrs(r *http.Request, rec *responseRecorder, elapsed time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", rec.status),
		slog.Int("bytes", rec.bytes),
		slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
	}

	optional := []struct {
		key   string
		value string
	}{
		{"route", routePattern(r)},
		{"query", r.URL.RawQuery},
		{"request_id", RequestIDFromContext(r.Context())},
		{"user_id", userIDOrEmpty(r)},
	}
	for _, o := range optional {
		if o.value != "" {
			attrs = append(attrs, slog.String(o.key, o.value))
		}
	}
	return attrs
}

// routePattern はchiがマッチさせたルートパターン（例: /api/posts/{id}/like）を返す。
// chiのルーター外では空文字列。
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

func userIDOrEmpty(r *http.Request) string {
	userID, _ := UserIDFromContext(r.Context())
	return userID
}

// levelForStatus は5xxをError、4xxをWarn、それ以外をInfoにする。
func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRequestIDMiddleware はリクエストIDを発行してコンテキストに載せ、X-Request-Idレスポンスヘッダーで返す。
// クライアントがX-Request-Idを送った場合はその値を引き継ぐ。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := RequestIDFromContext(r.Context()); id != "" {
				w.Header().Set(chimw.RequestIDHeader, id)
			}
			next.ServeHTTP(w, r)
		})
		return chimw.RequestID(echo)
	}
}

// RequestIDFromContext はリクエストIDを返す。未設定の場合は空文字列。
func RequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

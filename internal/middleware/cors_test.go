package middleware

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

// serveCORS はOriginヘッダー付きのリクエストをCORSミドルウェア越しに送り、次のハンドラーが呼ばれたかを返す。
func serveCORS(t *testing.T, allowed, method, origin string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	handler := NewCORSMiddleware(allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/feed", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, called
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"http://localhost:4200", []string{"http://localhost:4200"}},
		{" http://localhost:4200/ , https://feed.example.com ", []string{"http://localhost:4200", "https://feed.example.com"}},
		{"*", []string{"*"}},
		{" , ", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := ParseOrigins(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("ParseOrigins(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCORSMiddleware_AllowedOriginIsEchoed(t *testing.T) {
	w, called := serveCORS(t, "http://localhost:4200, https://feed.example.com", http.MethodGet, "https://feed.example.com")

	if !called {
		t.Error("next handler should be called")
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":   "https://feed.example.com",
		"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers":  "Content-Type, X-Request-Id",
		"Access-Control-Expose-Headers": "X-Request-Id, Retry-After",
		"Access-Control-Max-Age":        "86400",
		"Vary":                          "Origin",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	// Cookieを使わないためcredentialsは許可しない
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want empty", got)
	}
}

func TestCORSMiddleware_UnknownOriginGetsNoCORSHeaders(t *testing.T) {
	tests := []struct {
		name   string
		origin string
	}{
		{"other site", "https://evil.example.com"},
		{"no origin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, called := serveCORS(t, "http://localhost:4200", http.MethodPost, tt.origin)

			if !called {
				t.Error("next handler should still be called")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
			}
			if got := w.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want Origin", got)
			}
		})
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	w, _ := serveCORS(t, "*", http.MethodGet, "https://anywhere.example.com")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want echoed origin", got)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	w, called := serveCORS(t, "http://localhost:4200", http.MethodOptions, "http://localhost:4200")

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if called {
		t.Error("next handler should not be called for OPTIONS preflight")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:4200")
	}
}

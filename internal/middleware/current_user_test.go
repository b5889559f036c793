package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/teamfeed/internal/model"
)

// mockUserResolver はCurrentUserResolverのモック実装。
type mockUserResolver struct {
	getCurrentUserFn func(ctx context.Context) *model.User
}

func (m *mockUserResolver) GetCurrentUser(ctx context.Context) *model.User {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx)
	}
	return nil
}

func TestCurrentUserMiddleware_UsesStoredUser(t *testing.T) {
	resolver := &mockUserResolver{
		getCurrentUserFn: func(ctx context.Context) *model.User {
			return &model.User{ID: "u7", Name: "Stored"}
		},
	}

	var captured string
	handler := NewCurrentUserMiddleware(resolver, "u1")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserIDFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/feed", nil))

	if captured != "u7" {
		t.Errorf("userID = %q, want %q", captured, "u7")
	}
}

func TestCurrentUserMiddleware_FallsBackWhenNoUser(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
	}{
		{"ユーザー未保存", nil},
		{"ID空のユーザー", &model.User{Name: "nameless"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mockUserResolver{
				getCurrentUserFn: func(ctx context.Context) *model.User { return tt.user },
			}

			var captured string
			handler := NewCurrentUserMiddleware(resolver, "u1")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/composer/posts", nil))

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if captured != "u1" {
				t.Errorf("userID = %q, want %q", captured, "u1")
			}
		})
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	if _, err := UserIDFromContext(context.Background()); err == nil {
		t.Error("expected error for context without user ID")
	}
}

func TestContextWithUserID_RoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "u3")
	got, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "u3" {
		t.Errorf("userID = %q, want %q", got, "u3")
	}
}

// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/teamfeed/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// CurrentUserResolver は現在ユーザーの取得に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type CurrentUserResolver interface {
	GetCurrentUser(ctx context.Context) *model.User
}

// NewCurrentUserMiddleware はストアに保存された現在ユーザーのIDをリクエストコンテキストに注入する。
// 現在ユーザーが未保存の場合はfallbackIDを使う。
// 単一ユーザー前提のため認証は行わず、リクエストを拒否することはない。
func NewCurrentUserMiddleware(resolver CurrentUserResolver, fallbackID string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := fallbackID
			if u := resolver.GetCurrentUser(r.Context()); u != nil && u.ID != "" {
				userID = u.ID
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 現在ユーザーミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

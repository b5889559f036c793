package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/teamfeed/internal/model"
)

// UserStore はユーザーハンドラーが必要とするリポジトリ操作。
type UserStore interface {
	GetCurrentUser(ctx context.Context) *model.User
}

// UserHandler は現在ユーザーのHTTPハンドラー。
type UserHandler struct {
	store UserStore
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// Me は現在ユーザーを返す。ストアに未保存の場合は404。
// GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.store.GetCurrentUser(r.Context())
	if user == nil {
		handleServiceError(w, model.NewUserNotFoundError())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

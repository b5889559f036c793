package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/teamfeed/internal/model"
)

// PostStore は投稿ハンドラーが必要とするリポジトリ操作。
type PostStore interface {
	GetPosts(ctx context.Context) []model.Post
	UpdatePost(ctx context.Context, post model.Post) bool
	GetLikes(ctx context.Context) []string
}

// PostHandler は保存済み投稿といいね一覧のHTTPハンドラー。
type PostHandler struct {
	store PostStore
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(store PostStore) *PostHandler {
	return &PostHandler{store: store}
}

// likesResponse はいいね一覧のAPIレスポンス。
type likesResponse struct {
	PostIDs []string `json:"postIds"`
}

// ListPosts は保存順のまま全投稿を返す。
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.GetPosts(r.Context()))
}

// UpdatePost は投稿を丸ごと置き換える。
// PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var post model.Post
	if !decodeJSON(w, r, &post) {
		return
	}

	if post.ID == "" {
		post.ID = postID
	}
	if post.ID != postID {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("URLとボディの投稿IDが一致しません。"))
		return
	}

	if !h.store.UpdatePost(r.Context(), post) {
		handleServiceError(w, model.NewPostNotFoundError(postID))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ListLikes はいいね済みの投稿ID一覧を返す。
// GET /api/likes
func (h *PostHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, likesResponse{PostIDs: h.store.GetLikes(r.Context())})
}

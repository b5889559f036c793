package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/teamfeed/internal/feed"
	"github.com/hitoshi/teamfeed/internal/model"
)

// FeedServiceInterface はフィードハンドラーが必要とするサービスインターフェース。
type FeedServiceInterface interface {
	// List は検索・絞り込み・並び替えを適用した射影を返す。
	List(ctx context.Context, q feed.Query) []model.FeedPost
	// ToggleLike はいいねを反転し、再計算した射影を返す。
	ToggleLike(ctx context.Context, postID string, q feed.Query) ([]model.FeedPost, error)
	// AddComment はコメントを追加し、再計算した射影を返す。
	AddComment(ctx context.Context, postID, text string, q feed.Query) ([]model.FeedPost, error)
	// Comments は投稿のコメント一覧を返す。
	Comments(ctx context.Context, postID string) []string
}

// FeedHandler はフィード表示・いいね・コメントのHTTPハンドラー。
type FeedHandler struct {
	service FeedServiceInterface
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service FeedServiceInterface) *FeedHandler {
	return &FeedHandler{service: service}
}

// feedResponse はフィード射影のAPIレスポンス。
type feedResponse struct {
	Posts []model.FeedPost `json:"posts"`
	Count int              `json:"count"`
}

// addCommentRequest はコメント追加リクエストのボディ。
type addCommentRequest struct {
	Text string `json:"text"`
}

// commentsResponse はコメント一覧のAPIレスポンス。
type commentsResponse struct {
	PostID   string   `json:"postId"`
	Comments []string `json:"comments"`
}

// queryFromRequest はクエリパラメータ q / team / sort から射影条件を組み立てる。
// sortが未指定の場合は新しい順にする。
func queryFromRequest(r *http.Request) feed.Query {
	v := r.URL.Query()
	sortBy := v.Get("sort")
	if sortBy == "" {
		sortBy = feed.SortNewest
	}
	return feed.Query{
		SearchTerm: v.Get("q"),
		TeamFilter: v.Get("team"),
		SortBy:     sortBy,
	}
}

func newFeedResponse(posts []model.FeedPost) feedResponse {
	if posts == nil {
		posts = []model.FeedPost{}
	}
	return feedResponse{Posts: posts, Count: len(posts)}
}

// GetFeed はフィードの射影を返す。
// GET /api/feed?q=&team=&sort=
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts := h.service.List(r.Context(), queryFromRequest(r))
	writeJSON(w, http.StatusOK, newFeedResponse(posts))
}

// ToggleLike はいいねを反転し、再計算した射影を返す。
// POST /api/posts/{id}/like
func (h *FeedHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	posts, err := h.service.ToggleLike(r.Context(), postID, queryFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newFeedResponse(posts))
}

// ListComments は投稿のコメント一覧を返す。
// GET /api/posts/{id}/comments
func (h *FeedHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	comments := h.service.Comments(r.Context(), postID)
	if comments == nil {
		comments = []string{}
	}
	writeJSON(w, http.StatusOK, commentsResponse{PostID: postID, Comments: comments})
}

// AddComment はコメントを追加し、再計算した射影を返す。
// POST /api/posts/{id}/comments
func (h *FeedHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var req addCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	posts, err := h.service.AddComment(r.Context(), postID, req.Text, queryFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newFeedResponse(posts))
}

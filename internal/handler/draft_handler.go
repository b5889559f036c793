package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/teamfeed/internal/model"
)

// DraftStore は下書きハンドラーが必要とするリポジトリ操作。
type DraftStore interface {
	GetDraft(ctx context.Context, userID, postID string) *model.Draft
	SaveDraft(ctx context.Context, userID string, draft model.Draft, postID string)
	ClearDraft(ctx context.Context, userID, postID string)
}

// DraftHandler は下書きのHTTPハンドラー。
// /api/drafts/new は新規投稿用、/api/drafts/posts/{id} は既存投稿の編集用の下書きを扱う。
type DraftHandler struct {
	store DraftStore
	now   func() time.Time
}

// NewDraftHandler はDraftHandlerを生成する。
func NewDraftHandler(store DraftStore) *DraftHandler {
	return &DraftHandler{store: store, now: time.Now}
}

// GetDraft は下書きを返す。存在しない場合は404。
// GET /api/drafts/new, GET /api/drafts/posts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	draft := h.store.GetDraft(r.Context(), userID, chi.URLParam(r, "id"))
	if draft == nil {
		handleServiceError(w, model.NewDraftNotFoundError())
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// SaveDraft は下書きを上書き保存する。updatedAtはサーバー時刻で設定する。
// PUT /api/drafts/new, PUT /api/drafts/posts/{id}
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var draft model.Draft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	draft.UpdatedAt = h.now().UTC()

	h.store.SaveDraft(r.Context(), userID, draft, chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, draft)
}

// ClearDraft は下書きを削除する。存在しなくても204を返す。
// DELETE /api/drafts/new, DELETE /api/drafts/posts/{id}
func (h *DraftHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	h.store.ClearDraft(r.Context(), userID, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

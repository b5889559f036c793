package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/teamfeed/internal/composer"
	"github.com/hitoshi/teamfeed/internal/model"
)

// ComposerInterface はコンポーザーハンドラーが必要とするサービスインターフェース。
type ComposerInterface interface {
	LoadDraft(ctx context.Context, f *composer.Form) bool
	SaveDraft(ctx context.Context, f *composer.Form) model.Draft
	CreatePost(ctx context.Context, f *composer.Form) *model.Post
}

// ComposerHandler は投稿フォームのHTTPハンドラー。
type ComposerHandler struct {
	composer ComposerInterface
}

// NewComposerHandler はComposerHandlerを生成する。
func NewComposerHandler(c ComposerInterface) *ComposerHandler {
	return &ComposerHandler{composer: c}
}

// composerFormResponse はフォーム初期値のAPIレスポンス。
type composerFormResponse struct {
	Form     composer.Form `json:"form"`
	HasDraft bool          `json:"hasDraft"`
}

// createPostResponse は投稿作成のAPIレスポンス。Formはリセット後の値。
type createPostResponse struct {
	Post model.Post    `json:"post"`
	Form composer.Form `json:"form"`
}

// GetForm は下書きを反映したフォームを返す。下書きがなければ初期値。
// GET /api/composer
func (h *ComposerHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form := composer.NewForm()
	hasDraft := h.composer.LoadDraft(r.Context(), &form)
	writeJSON(w, http.StatusOK, composerFormResponse{Form: form, HasDraft: hasDraft})
}

// SaveDraft はフォームの内容を下書きとして保存する。空のフォームも保存する。
// POST /api/composer/draft
func (h *ComposerHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var form composer.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	draft := h.composer.SaveDraft(r.Context(), &form)
	writeJSON(w, http.StatusOK, draft)
}

// CreatePost はフォームから投稿を作成する。
// 本文が空の場合、コア処理は何もしないため、ここで422 EMPTY_BODYとして表面化する。
// POST /api/composer/posts
func (h *ComposerHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var form composer.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	post := h.composer.CreatePost(r.Context(), &form)
	if post == nil {
		handleServiceError(w, model.NewEmptyBodyError())
		return
	}

	writeJSON(w, http.StatusCreated, createPostResponse{Post: *post, Form: form})
}

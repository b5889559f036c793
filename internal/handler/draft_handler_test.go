package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/teamfeed/internal/model"
)

// mockDraftStore はDraftStoreのモック実装。
type mockDraftStore struct {
	getDraftFn   func(ctx context.Context, userID, postID string) *model.Draft
	saveDraftFn  func(ctx context.Context, userID string, draft model.Draft, postID string)
	clearDraftFn func(ctx context.Context, userID, postID string)
}

func (m *mockDraftStore) GetDraft(ctx context.Context, userID, postID string) *model.Draft {
	if m.getDraftFn != nil {
		return m.getDraftFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockDraftStore) SaveDraft(ctx context.Context, userID string, draft model.Draft, postID string) {
	if m.saveDraftFn != nil {
		m.saveDraftFn(ctx, userID, draft, postID)
	}
}

func (m *mockDraftStore) ClearDraft(ctx context.Context, userID, postID string) {
	if m.clearDraftFn != nil {
		m.clearDraftFn(ctx, userID, postID)
	}
}

func TestDraftHandler_GetDraft_New(t *testing.T) {
	store := &mockDraftStore{
		getDraftFn: func(ctx context.Context, userID, postID string) *model.Draft {
			if userID != "u1" || postID != "" {
				t.Errorf("unexpected key: user=%s post=%q", userID, postID)
			}
			return &model.Draft{Body: "wip", Tags: []string{"a"}, Mood: "funny"}
		},
	}
	h := NewDraftHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/drafts/new", nil)
	req = withUserID(req, "u1")
	rec := httptest.NewRecorder()
	h.GetDraft(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var d model.Draft
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if d.Body != "wip" {
		t.Errorf("expected body wip, got %q", d.Body)
	}
}

func TestDraftHandler_GetDraft_ForPost(t *testing.T) {
	var gotPostID string
	store := &mockDraftStore{
		getDraftFn: func(ctx context.Context, userID, postID string) *model.Draft {
			gotPostID = postID
			return &model.Draft{}
		},
	}
	h := NewDraftHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/drafts/posts/p1", nil)
	req = withUserID(req, "u1")
	req = withChiURLParam(req, "id", "p1")
	rec := httptest.NewRecorder()
	h.GetDraft(rec, req)

	if gotPostID != "p1" {
		t.Errorf("expected postID p1, got %q", gotPostID)
	}
}

func TestDraftHandler_GetDraft_NotFound(t *testing.T) {
	h := NewDraftHandler(&mockDraftStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/drafts/new", nil)
	req = withUserID(req, "u1")
	rec := httptest.NewRecorder()
	h.GetDraft(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if code := parseAPIErrorResponse(t, rec)["code"]; code != model.ErrCodeDraftNotFound {
		t.Errorf("expected code %s, got %s", model.ErrCodeDraftNotFound, code)
	}
}

func TestDraftHandler_GetDraft_NoUserInContext(t *testing.T) {
	h := NewDraftHandler(&mockDraftStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/drafts/new", nil)
	rec := httptest.NewRecorder()
	h.GetDraft(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestDraftHandler_SaveDraft_StampsUpdatedAt(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var saved model.Draft
	store := &mockDraftStore{
		saveDraftFn: func(ctx context.Context, userID string, draft model.Draft, postID string) {
			saved = draft
		},
	}
	h := NewDraftHandler(store)
	h.now = func() time.Time { return fixed }

	body := `{"title":"t","body":"b","mood":"serious","updatedAt":"2000-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/api/drafts/new", bytes.NewBufferString(body))
	req = withUserID(req, "u1")
	rec := httptest.NewRecorder()
	h.SaveDraft(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !saved.UpdatedAt.Equal(fixed) {
		t.Errorf("expected updatedAt %v, got %v", fixed, saved.UpdatedAt)
	}
	if saved.Tags == nil {
		t.Error("expected non-nil tags")
	}
	if saved.Mood != "serious" {
		t.Errorf("expected mood serious, got %q", saved.Mood)
	}
}

func TestDraftHandler_SaveDraft_InvalidJSON(t *testing.T) {
	called := false
	store := &mockDraftStore{
		saveDraftFn: func(ctx context.Context, userID string, draft model.Draft, postID string) {
			called = true
		},
	}
	h := NewDraftHandler(store)

	req := httptest.NewRequest(http.MethodPut, "/api/drafts/new", bytes.NewBufferString(`[`))
	req = withUserID(req, "u1")
	rec := httptest.NewRecorder()
	h.SaveDraft(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if called {
		t.Error("store should not be called for invalid JSON")
	}
}

func TestDraftHandler_ClearDraft(t *testing.T) {
	var gotUser, gotPost string
	store := &mockDraftStore{
		clearDraftFn: func(ctx context.Context, userID, postID string) {
			gotUser, gotPost = userID, postID
		},
	}
	h := NewDraftHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/drafts/posts/p1", nil)
	req = withUserID(req, "u1")
	req = withChiURLParam(req, "id", "p1")
	rec := httptest.NewRecorder()
	h.ClearDraft(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotUser != "u1" || gotPost != "p1" {
		t.Errorf("unexpected key: user=%s post=%s", gotUser, gotPost)
	}
}

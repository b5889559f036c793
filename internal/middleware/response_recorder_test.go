package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseRecorder_FirstWriteHeaderWins(t *testing.T) {
	rec := newResponseRecorder(httptest.NewRecorder())

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.status != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.status, http.StatusCreated)
	}
}

func TestResponseRecorder_CountsBytes(t *testing.T) {
	rec := newResponseRecorder(httptest.NewRecorder())

	rec.Write([]byte(`{"postIds":`))
	rec.Write([]byte(`[]}`))

	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.status, http.StatusOK)
	}
	if rec.bytes != len(`{"postIds":[]}`) {
		t.Errorf("bytes = %d, want %d", rec.bytes, len(`{"postIds":[]}`))
	}
}

func TestResponseRecorder_Unwrap(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := newResponseRecorder(inner)

	if rec.Unwrap() != inner {
		t.Error("Unwrap() should return the wrapped writer")
	}
}

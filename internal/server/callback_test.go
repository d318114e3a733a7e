package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCallbackHandler(t *testing.T) {
	t.Run("Delivers Authorization Code", func(t *testing.T) {
		h := NewCallbackHandler("state123")
		router := NewBasicRouter()
		router.Handler(h)

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=authcode", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		result := <-h.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Code != "authcode" {
			t.Errorf("expected code authcode, got %s", result.Code)
		}
	})

	t.Run("Rejects State Mismatch", func(t *testing.T) {
		h := NewCallbackHandler("state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=evil&code=authcode", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-h.Result()
		if result.Error() == nil {
			t.Error("expected state mismatch error")
		}
	})

	t.Run("Surfaces Provider Error", func(t *testing.T) {
		h := NewCallbackHandler("state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied&error_description=user+cancelled", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		result := <-h.Result()
		if result.Error() == nil {
			t.Error("expected authorization error from provider redirect")
		}
	})

	t.Run("Second Hit Rejected", func(t *testing.T) {
		h := NewCallbackHandler("state123")

		first := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=one", nil)
		h.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=two", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, second)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected repeat callback to be rejected, got %d", rec.Code)
		}

		result := <-h.Result()
		if result.Code != "one" {
			t.Errorf("expected first code to win, got %s", result.Code)
		}
	})
}

package spotify

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
	sportifytest "github.com/ayomide-o/sportify/internal/testing"
)

func newTestClient(t *testing.T, rt *sportifytest.MockRoundTripper) (*Client, *session.Manager, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, nil)
	client := NewClient(sessions, nil, WithHTTPClient(&http.Client{Transport: rt}))
	return client, sessions, store
}

func TestClientDo(t *testing.T) {
	t.Run("Short Circuits On Expired Session", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusOK, `{}`), nil)
		client, sessions, _ := newTestClient(t, rt)

		var loggedOut bool
		sessions.Subscribe(func(loggedIn bool) {
			if !loggedIn {
				loggedOut = true
			}
		})

		_, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
		sportifytest.AssertCalls(t, rt, 0)
		if !loggedOut {
			t.Error("expected logout to be triggered before failing")
		}
	})

	t.Run("Token Removed After Validity Check", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusOK, `{}`), nil)
		client, _, store := newTestClient(t, rt)

		// Expiry key alone passes the gate; the access token is gone.
		expiresAt := time.Now().Add(time.Hour).UnixMilli()
		if err := store.Set(session.KeyExpiresAt, strconv.FormatInt(expiresAt, 10)); err != nil {
			t.Fatalf("seeding store: %v", err)
		}

		_, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if !errors.Is(err, shared.ErrNoCredential) {
			t.Errorf("expected ErrNoCredential, got %v", err)
		}
		sportifytest.AssertCalls(t, rt, 0)
	})

	t.Run("Attaches Bearer Header", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusOK, `{}`), nil)
		client, sessions, _ := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "")

		resp, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		resp.Body.Close()

		if got := rt.LastRequest.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("expected Bearer tok123, got %q", got)
		}
	})

	t.Run("Caller Cannot Override Authorization", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusOK, `{}`), nil)
		client, sessions, _ := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "")

		header := http.Header{
			"Authorization": []string{"Bearer forged"},
			"Content-Type":  []string{"application/json"},
		}
		resp, err := client.Do(context.Background(), http.MethodGet, "/me", nil, header)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		resp.Body.Close()

		if got := rt.LastRequest.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("expected stored token to win, got %q", got)
		}
		if got := rt.LastRequest.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected caller headers preserved, got %q", got)
		}
	})

	t.Run("Forces Logout On 401", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusUnauthorized, `{"error":{"status":401}}`), nil)
		client, sessions, store := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "refresh123")

		_, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}

		// Exactly one network call, then teardown.
		sportifytest.AssertCalls(t, rt, 1)
		if store.Len() != 0 {
			t.Errorf("expected store cleared after 401, %d keys remain", store.Len())
		}
		if sessions.Valid() {
			t.Error("expected invalid session after 401")
		}
	})

	t.Run("Returns Raw Response For Other Statuses", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(sportifytest.JSONResponse(http.StatusTooManyRequests, `{}`), nil)
		client, sessions, _ := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "")

		resp, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if err != nil {
			t.Fatalf("expected raw response, got %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusTooManyRequests {
			t.Errorf("expected 429 passed through, got %d", resp.StatusCode)
		}
		if sessions.Valid() != true {
			t.Error("expected session untouched on non-auth errors")
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(nil, errors.New("connection refused"))
		client, sessions, _ := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "")

		_, err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		sportifytest.AssertCalls(t, rt, 1)
	})

	t.Run("Body Read Failure Surfaces As Decode Error", func(t *testing.T) {
		rt := sportifytest.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       &sportifytest.FCloser{},
		}, nil)
		client, sessions, _ := newTestClient(t, rt)
		sessions.Persist("tok123", time.Hour, "")

		_, err := client.Me(context.Background())
		if err == nil {
			t.Fatal("expected decode error from unreadable body")
		}
	})
}

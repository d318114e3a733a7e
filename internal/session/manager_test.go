package session

import (
	"testing"
	"time"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *time.Time) {
	t.Helper()
	store := NewMemoryStore()
	mgr := NewManager(store, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return now }
	return mgr, store, &now
}

func TestManager(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		t.Run("Empty Store", func(t *testing.T) {
			mgr, _, _ := newTestManager(t)
			if mgr.Valid() {
				t.Error("expected empty store to be invalid")
			}
		})

		t.Run("Malformed Expiry", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			store.Set(KeyExpiresAt, "not-a-number")
			if mgr.Valid() {
				t.Error("expected malformed expiry to be invalid")
			}
		})

		t.Run("Expiry Window", func(t *testing.T) {
			mgr, _, now := newTestManager(t)
			if err := mgr.Persist("tok123", 3600*time.Second, ""); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			*now = now.Add(3599 * time.Second)
			if !mgr.Valid() {
				t.Error("expected session valid one second before expiry")
			}

			// The boundary instant itself is expired.
			*now = now.Add(1 * time.Second)
			if mgr.Valid() {
				t.Error("expected session invalid at expiry instant")
			}

			*now = now.Add(1 * time.Hour)
			if mgr.Valid() {
				t.Error("expected session invalid after expiry")
			}
		})
	})

	t.Run("ValidToken", func(t *testing.T) {
		t.Run("Returns Stored Token While Valid", func(t *testing.T) {
			mgr, _, _ := newTestManager(t)
			if err := mgr.Persist("tok123", time.Hour, "refresh123"); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			token, ok := mgr.ValidToken()
			if !ok {
				t.Fatal("expected a valid token")
			}
			if token != "tok123" {
				t.Errorf("expected tok123, got %s", token)
			}
		})

		t.Run("Absent After Expiry", func(t *testing.T) {
			mgr, _, now := newTestManager(t)
			if err := mgr.Persist("tok123", time.Hour, ""); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			*now = now.Add(2 * time.Hour)
			if _, ok := mgr.ValidToken(); ok {
				t.Error("expected no token for expired session")
			}

			// Raw read still sees the stored credential.
			raw, ok := mgr.RawToken()
			if !ok || raw != "tok123" {
				t.Errorf("expected raw token tok123, got %q (%v)", raw, ok)
			}
		})
	})

	t.Run("Persist", func(t *testing.T) {
		t.Run("Writes All Three Keys", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			if err := mgr.Persist("tok123", time.Hour, "refresh123"); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			for _, key := range []string{KeyAccessToken, KeyExpiresAt, KeyRefreshToken} {
				if _, ok, _ := store.Get(key); !ok {
					t.Errorf("expected key %s to be written", key)
				}
			}
		})

		t.Run("Tolerates Absent Refresh Token", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			if err := mgr.Persist("tok123", time.Hour, ""); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			value, ok, _ := store.Get(KeyRefreshToken)
			if !ok || value != "" {
				t.Errorf("expected empty refresh token to be stored, got %q", value)
			}
			if !mgr.Valid() {
				t.Error("expected session valid without refresh token")
			}
		})

		t.Run("Notifies Subscribers", func(t *testing.T) {
			mgr, _, _ := newTestManager(t)

			var states []bool
			mgr.Subscribe(func(loggedIn bool) { states = append(states, loggedIn) })

			mgr.Persist("tok123", time.Hour, "")
			mgr.Logout()

			if len(states) != 2 || !states[0] || states[1] {
				t.Errorf("expected [true false] notifications, got %v", states)
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		t.Run("Clears Session Keys", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			mgr.Persist("tok123", time.Hour, "refresh123")

			if err := mgr.Logout(); err != nil {
				t.Fatalf("logout failed: %v", err)
			}

			if store.Len() != 0 {
				t.Errorf("expected empty store after logout, %d keys remain", store.Len())
			}
			if mgr.Valid() {
				t.Error("expected invalid session after logout")
			}
		})

		t.Run("Idempotent", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			mgr.Persist("tok123", time.Hour, "")

			if err := mgr.Logout(); err != nil {
				t.Fatalf("first logout failed: %v", err)
			}
			if err := mgr.Logout(); err != nil {
				t.Fatalf("second logout failed: %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("expected empty store, %d keys remain", store.Len())
			}
		})

		t.Run("Preserves Recent Searches", func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			mgr.Persist("tok123", time.Hour, "")

			recents := NewRecents(store)
			if err := recents.Save(RecentSearch{ID: "t1", Name: "Essence", Kind: "track"}); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			mgr.Logout()

			items, err := recents.List()
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(items) != 1 {
				t.Errorf("expected recent searches to survive logout, got %d items", len(items))
			}
		})
	})
}

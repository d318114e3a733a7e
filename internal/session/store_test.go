package session

import (
	"testing"

	"github.com/ayomide-o/sportify/internal/shared"
)

func TestSQLiteStore(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	t.Run("Get Missing Key", func(t *testing.T) {
		if _, ok, err := store.Get("nope"); err != nil || ok {
			t.Errorf("expected absent key, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		if err := store.Set("k", "v1"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := store.Set("k", "v2"); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}

		value, ok, err := store.Get("k")
		if err != nil || !ok {
			t.Fatalf("get failed: ok=%v err=%v", ok, err)
		}
		if value != "v2" {
			t.Errorf("expected v2, got %s", value)
		}
	})

	t.Run("SetMany Commits As Unit", func(t *testing.T) {
		pairs := map[string]string{
			KeyAccessToken:  "tok",
			KeyExpiresAt:    "12345",
			KeyRefreshToken: "",
		}
		if err := store.SetMany(pairs); err != nil {
			t.Fatalf("setmany failed: %v", err)
		}

		for key, want := range pairs {
			got, ok, err := store.Get(key)
			if err != nil || !ok {
				t.Fatalf("expected key %s present: ok=%v err=%v", key, ok, err)
			}
			if got != want {
				t.Errorf("key %s: expected %q, got %q", key, want, got)
			}
		}
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		if err := store.Delete(KeyAccessToken, KeyExpiresAt, KeyRefreshToken); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := store.Delete(KeyAccessToken, KeyExpiresAt, KeyRefreshToken); err != nil {
			t.Fatalf("repeat delete failed: %v", err)
		}
		if _, ok, _ := store.Get(KeyAccessToken); ok {
			t.Error("expected access token to be deleted")
		}
	})
}

func TestRecents(t *testing.T) {
	store := NewMemoryStore()
	recents := NewRecents(store)

	t.Run("Empty List", func(t *testing.T) {
		items, err := recents.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty list, got %d items", len(items))
		}
	})

	t.Run("Newest First With Dedup", func(t *testing.T) {
		recents.Save(RecentSearch{ID: "a", Name: "First", Kind: "track"})
		recents.Save(RecentSearch{ID: "b", Name: "Second", Kind: "artist"})
		recents.Save(RecentSearch{ID: "a", Name: "First Again", Kind: "track"})

		items, err := recents.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items after dedup, got %d", len(items))
		}
		if items[0].ID != "a" || items[1].ID != "b" {
			t.Errorf("expected order [a b], got [%s %s]", items[0].ID, items[1].ID)
		}
		if items[0].Name != "First Again" {
			t.Errorf("expected re-saved item to replace the old entry, got %s", items[0].Name)
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		for i := 0; i < MaxRecentSearches+5; i++ {
			recents.Save(RecentSearch{ID: string(rune('A' + i)), Name: "x", Kind: "track"})
		}

		items, _ := recents.List()
		if len(items) != MaxRecentSearches {
			t.Errorf("expected list capped at %d, got %d", MaxRecentSearches, len(items))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := recents.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		items, _ := recents.List()
		if len(items) != 0 {
			t.Errorf("expected empty list after clear, got %d items", len(items))
		}
	})
}

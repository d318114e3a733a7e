package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayomide-o/sportify/internal/session"
)

// catalogServer fakes the catalog API with per-path handlers.
func catalogServer(t *testing.T, routes map[string]http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.HandleFunc(path, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sessions := session.NewManager(session.NewMemoryStore(), nil)
	sessions.Persist("tok123", time.Hour, "")
	client := NewClient(sessions, nil, WithBaseURL(srv.URL))
	return client, srv
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestCatalog(t *testing.T) {
	t.Run("RecentlyPlayed Deduplicates", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/me/player/recently-played": jsonHandler(`{"items":[
				{"track":{"id":"t1","name":"Essence","album":{"images":[{"url":"http://img/1"}]},"artists":[{"name":"Wizkid"},{"name":"Tems"}]}},
				{"track":{"id":"t1","name":"Essence","album":{"images":[]},"artists":[{"name":"Wizkid"}]}},
				{"track":{"id":"t2","name":"Peru","album":{"images":[]},"artists":[{"name":"Fireboy DML"}]}}
			]}`),
		})

		items, err := client.RecentlyPlayed(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 unique tracks, got %d", len(items))
		}
		if items[0].Subtitle != "Wizkid, Tems" {
			t.Errorf("expected joined artist names, got %q", items[0].Subtitle)
		}
		if items[0].Kind != KindTrack {
			t.Errorf("expected track kind, got %s", items[0].Kind)
		}
	})

	t.Run("Section Fetch Swallows Upstream Error", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/me/albums": func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream broken", http.StatusBadGateway)
			},
		})

		items, err := client.UserAlbums(context.Background())
		if err != nil {
			t.Errorf("expected section error to be swallowed, got %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty section, got %d items", len(items))
		}
	})

	t.Run("Search Combines Result Types", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/search": jsonHandler(`{
				"tracks":{"items":[{"id":"t1","name":"Essence","album":{"images":[{"url":"u"}]},"artists":[{"name":"Wizkid"}]}]},
				"artists":{"items":[{"id":"a1","name":"Burna Boy","images":[]}]},
				"albums":{"items":[{"id":"al1","name":"Twice As Tall","images":[],"artists":[{"name":"Burna Boy"}]}]},
				"playlists":{"items":[{"id":"p1","name":"Afrobeats Hits","images":[],"owner":{"display_name":"Spotify"}}]}
			}`),
		})

		results, err := client.Search(context.Background(), "burna")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 4 {
			t.Fatalf("expected 4 combined results, got %d", len(results))
		}

		kinds := map[Kind]bool{}
		for _, r := range results {
			kinds[r.Kind] = true
		}
		for _, want := range []Kind{KindTrack, KindArtist, KindAlbum, KindPlaylist} {
			if !kinds[want] {
				t.Errorf("expected a %s result", want)
			}
		}
	})

	t.Run("Search Propagates Failure", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/search": func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad request", http.StatusBadRequest)
			},
		})

		if _, err := client.Search(context.Background(), "x"); err == nil {
			t.Error("expected search failure to propagate")
		}
	})

	t.Run("Playlist Detail Propagates Failure", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/playlists/p404": func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
		})

		if _, err := client.Playlist(context.Background(), "p404"); err == nil {
			t.Error("expected playlist detail failure to propagate")
		}
	})

	t.Run("Playlist Detail Maps Tracks", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/playlists/p1": jsonHandler(`{
				"id":"p1","name":"Drive","images":[{"url":"http://img/p1"}],
				"tracks":{"items":[
					{"track":{"id":"t1","name":"Essence","album":{"images":[{"url":"http://img/t1"}]},"artists":[{"name":"Wizkid"}]}},
					{"track":{"id":"t2","name":"Peru","album":{"images":[]},"artists":[]}}
				]}
			}`),
		})

		detail, err := client.Playlist(context.Background(), "p1")
		if err != nil {
			t.Fatalf("playlist fetch failed: %v", err)
		}
		if detail.Title != "Drive" || len(detail.Tracks) != 2 {
			t.Fatalf("unexpected detail %+v", detail)
		}
		if detail.Tracks[1].Artist != "Unknown Artist" {
			t.Errorf("expected artist fallback, got %q", detail.Tracks[1].Artist)
		}
	})

	t.Run("CreatePlaylist Resolves User First", func(t *testing.T) {
		var createdFor string
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/me": jsonHandler(`{"id":"user42","display_name":"Ayo"}`),
			"/users/user42/playlists": func(w http.ResponseWriter, r *http.Request) {
				createdFor = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"id":"newpl"}`)
			},
		})

		id, err := client.CreatePlaylist(context.Background(), "Gym")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if id != "newpl" {
			t.Errorf("expected newpl, got %s", id)
		}
		if createdFor != "/users/user42/playlists" {
			t.Errorf("expected playlist created for resolved user, got %s", createdFor)
		}
	})

	t.Run("PlaylistsBySearchTerm Filters Imageless Entries", func(t *testing.T) {
		client, _ := catalogServer(t, map[string]http.HandlerFunc{
			"/search": jsonHandler(`{"playlists":{"items":[
				{"id":"p1","name":"Good","images":[{"url":"http://img/p1"}]},
				{"id":"p2","name":"No Image","images":[]},
				{"id":"","name":"No ID","images":[{"url":"http://img/x"}]}
			]}}`),
		})

		items, err := client.PlaylistsBySearchTerm(context.Background(), "afro")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != "p1" {
			t.Errorf("expected only the complete entry, got %+v", items)
		}
	})
}

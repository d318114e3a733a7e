package preview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ayomide-o/sportify/internal/shared"
)

func TestBestMatch(t *testing.T) {
	t.Run("Returns First Result", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[
				{"id":3135556,"title":"Harder, Better, Faster, Stronger","preview":"https://cdn.example/preview/3135556.mp3","artist":{"name":"Daft Punk"}},
				{"id":999,"title":"Harder Better (Cover)","preview":"https://cdn.example/preview/999.mp3","artist":{"name":"Someone Else"}}
			]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		match, err := client.BestMatch(context.Background(), "Harder, Better, Faster, Stronger", "Daft Punk")
		if err != nil {
			t.Fatalf("expected match, got error: %v", err)
		}

		if match.URL != "https://cdn.example/preview/3135556.mp3" {
			t.Errorf("expected first result's preview URL, got %q", match.URL)
		}

		if match.Artist != "Daft Punk" {
			t.Errorf("expected artist from first result, got %q", match.Artist)
		}

		want := `artist:"Daft Punk" track:"Harder, Better, Faster, Stronger"`
		if gotQuery != want {
			t.Errorf("expected query %q, got %q", want, gotQuery)
		}
	})

	t.Run("Escapes Query Characters", func(t *testing.T) {
		var rawQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			w.Write([]byte(`{"data":[{"id":1,"title":"t","preview":"https://cdn.example/p.mp3","artist":{"name":"a"}}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		_, err := client.BestMatch(context.Background(), "Señorita & Friends", "Rosalía")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		decoded, err := url.ParseQuery(rawQuery)
		if err != nil {
			t.Fatalf("query did not survive escaping: %v", err)
		}

		want := `artist:"Rosalía" track:"Señorita & Friends"`
		if got := decoded.Get("q"); got != want {
			t.Errorf("expected decoded query %q, got %q", want, got)
		}
	})

	t.Run("No Results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		_, err := client.BestMatch(context.Background(), "Unknown Song", "Nobody")
		if !errors.Is(err, shared.ErrPreviewUnavailable) {
			t.Errorf("expected ErrPreviewUnavailable, got %v", err)
		}
	})

	t.Run("Match Without Preview URL", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"id":5,"title":"t","preview":"","artist":{"name":"a"}}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		_, err := client.BestMatch(context.Background(), "t", "a")
		if !errors.Is(err, shared.ErrPreviewUnavailable) {
			t.Errorf("expected ErrPreviewUnavailable, got %v", err)
		}
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		_, err := client.BestMatch(context.Background(), "t", "a")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

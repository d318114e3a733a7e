// package tasks implements long-running catalog operations.
//
// The core abstraction is FeedEngine, which assembles the home feed from
// several catalog sections. Operations emit progress updates via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/spotify"
)

// SectionResult represents the outcome of loading a single home feed section.
type SectionResult struct {
	Section string             // Section identifier
	Items   []spotify.ListItem // Loaded entries, nil on failure
	Error   error              // Error if the section failed to load
}

// HomeFeed contains all sections of the home screen.
type HomeFeed struct {
	RecentlyPlayed  []spotify.ListItem // Recently played tracks, deduplicated
	MadeForYou      []spotify.ListItem // Editorial mixes matched by name
	Playlists       []spotify.ListItem // The user's playlists
	Albums          []spotify.ListItem // Saved albums
	FollowedArtists []spotify.ListItem // Followed artists
	Categories      []spotify.Category // Browse categories
	Errors          []SectionResult    // Failed section fetches
}

// Catalog defines the catalog reads the feed engine depends on.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type Catalog interface {
	RecentlyPlayed(ctx context.Context) ([]spotify.ListItem, error)
	MadeForYou(ctx context.Context) ([]spotify.ListItem, error)
	UserPlaylists(ctx context.Context) ([]spotify.ListItem, error)
	UserAlbums(ctx context.Context) ([]spotify.ListItem, error)
	FollowedArtists(ctx context.Context) ([]spotify.ListItem, error)
	Categories(ctx context.Context) ([]spotify.Category, error)
}

// FeedEngine loads home feed sections concurrently.
type FeedEngine struct {
	catalog Catalog
}

// NewFeedEngine creates a FeedEngine backed by the given catalog.
func NewFeedEngine(catalog Catalog) *FeedEngine {
	return &FeedEngine{catalog: catalog}
}

type sectionOperation struct {
	name  string
	phase Phase
	run   func(ctx context.Context, feed *HomeFeed) error
}

// Load fetches all home feed sections concurrently and assembles a HomeFeed.
//
// Individual section failures are recorded in HomeFeed.Errors rather than
// failing the whole load; only authentication failures abort early, since
// every remaining section would fail the same way.
func (e *FeedEngine) Load(ctx context.Context, prog chan<- ProgressUpdate) (*HomeFeed, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	feed := &HomeFeed{}
	var mu sync.Mutex

	operations := []sectionOperation{
		{name: "recently_played", phase: FetchRecent, run: func(ctx context.Context, f *HomeFeed) error {
			items, err := e.catalog.RecentlyPlayed(ctx)
			f.RecentlyPlayed = items
			return err
		}},
		{name: "made_for_you", phase: FetchMixes, run: func(ctx context.Context, f *HomeFeed) error {
			items, err := e.catalog.MadeForYou(ctx)
			f.MadeForYou = items
			return err
		}},
		{name: "playlists", phase: FetchPlaylists, run: func(ctx context.Context, f *HomeFeed) error {
			items, err := e.catalog.UserPlaylists(ctx)
			f.Playlists = items
			return err
		}},
		{name: "albums", phase: FetchAlbums, run: func(ctx context.Context, f *HomeFeed) error {
			items, err := e.catalog.UserAlbums(ctx)
			f.Albums = items
			return err
		}},
		{name: "artists", phase: FetchArtists, run: func(ctx context.Context, f *HomeFeed) error {
			items, err := e.catalog.FollowedArtists(ctx)
			f.FollowedArtists = items
			return err
		}},
		{name: "categories", phase: FetchCategories, run: func(ctx context.Context, f *HomeFeed) error {
			cats, err := e.catalog.Categories(ctx)
			f.Categories = cats
			return err
		}},
	}

	total := len(operations)
	var completed int

	var wg sync.WaitGroup
	errs := make(chan error, total)
	for _, op := range operations {
		wg.Add(1)
		go func(op sectionOperation) {
			defer wg.Done()

			e.sendProgress(prog, fetchSectionUpdate(op.phase, op.name, total))

			err := op.run(ctx, feed)

			mu.Lock()
			completed++
			step := completed
			if err != nil {
				feed.Errors = append(feed.Errors, SectionResult{Section: op.name, Error: err})
			}
			mu.Unlock()

			if err != nil {
				errs <- err
				e.sendProgress(prog, sectionFailedUpdate(op.phase, op.name, step, total, err))
				return
			}
			e.sendProgress(prog, sectionLoadedUpdate(op.phase, op.name, step, total))
		}(op)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if isAuthErr(err) {
			return nil, err
		}
	}
	return feed, nil
}

// sendProgress sends a progress update without blocking when no receiver is attached.
func (e *FeedEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

func isAuthErr(err error) bool {
	return errors.Is(err, shared.ErrSessionExpired) ||
		errors.Is(err, shared.ErrNoCredential) ||
		errors.Is(err, shared.ErrUnauthorized)
}

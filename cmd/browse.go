package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/spotify"
)

func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'sportify setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

// Home loads and prints the home feed sections.
func (r *Runner) Home(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.requireCatalog(); err != nil {
		return err
	}

	r.logger.Info("loading home feed")

	feed, err := r.engine.Load(ctx, nil)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(feed, pretty)
	}

	r.printSection("Recently played", feed.RecentlyPlayed)
	r.printSection("Made for you", feed.MadeForYou)
	r.printSection("Your playlists", feed.Playlists)
	r.printSection("Your albums", feed.Albums)
	r.printSection("Following", feed.FollowedArtists)

	if len(feed.Categories) > 0 {
		r.writePlainHeader("Browse")
		for _, cat := range feed.Categories {
			r.writePlain("  %s\n", cat.Name)
		}
	}

	for _, failed := range feed.Errors {
		r.writePlain("⚠ %s failed to load: %v\n", failed.Section, failed.Error)
	}

	return nil
}

func (r *Runner) printSection(title string, items []spotify.ListItem) {
	if len(items) == 0 {
		return
	}
	r.writePlainHeader(title)
	for i, item := range items {
		r.writePlain("%d. %s", i+1, item.Title)
		if item.Subtitle != "" {
			r.writePlain(" — %s", item.Subtitle)
		}
		r.writePlain("  [%s %s]\n", item.Kind, item.ID)
	}
	r.writePlain("\n")
}

// Search runs a combined catalog search, or a playlist-only search with --playlists.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	if cmd.Bool("playlists") {
		items, err := r.catalog.PlaylistsBySearchTerm(ctx, query)
		if err != nil {
			return err
		}
		if useJSON {
			return r.writeJSON(items, pretty)
		}
		r.writePlain("Found %d playlists:\n\n", len(items))
		for i, item := range items {
			r.writePlain("%d. %s  [%s]\n", i+1, item.Title, item.ID)
		}
		return nil
	}

	results, err := r.catalog.Search(ctx, query)
	if err != nil {
		return err
	}

	if r.recents != nil && len(results) > 0 {
		top := results[0]
		if err := r.recents.Save(session.RecentSearch{
			ID:       top.ID,
			Name:     top.Name,
			Kind:     string(top.Kind),
			ImageURL: top.ImageURL,
			SubText:  top.SubText,
		}); err != nil {
			r.logger.Warn("failed to record recent search", "error", err)
		}
	}

	if useJSON {
		return r.writeJSON(results, pretty)
	}

	r.writePlain("Found %d results:\n\n", len(results))
	for i, res := range results {
		r.writePlain("%d. %s", i+1, res.Name)
		if res.SubText != "" {
			r.writePlain(" — %s", res.SubText)
		}
		r.writePlain("  [%s %s]\n", res.Kind, res.ID)
	}

	return nil
}

// Recents prints or clears the bounded recent-search history.
func (r *Runner) Recents(ctx context.Context, cmd *cli.Command) error {
	if r.recents == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrServiceUnavailable)
	}

	if cmd.Bool("clear") {
		if err := r.recents.Clear(); err != nil {
			return fmt.Errorf("failed to clear recent searches: %w", err)
		}
		return r.writePlain("✓ Recent searches cleared\n")
	}

	entries, err := r.recents.List()
	if err != nil {
		return fmt.Errorf("failed to load recent searches: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No recent searches.\n")
	}

	for i, entry := range entries {
		r.writePlain("%d. %s", i+1, entry.Name)
		if entry.SubText != "" {
			r.writePlain(" — %s", entry.SubText)
		}
		r.writePlain("  [%s %s]\n", entry.Kind, entry.ID)
	}
	return nil
}

// LibraryPlaylists prints the authenticated user's playlists.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	items, err := r.catalog.UserPlaylists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No saved playlists.\n")
	}
	r.printSection("Your playlists", items)
	return nil
}

// LibraryAlbums prints the authenticated user's saved albums.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	items, err := r.catalog.UserAlbums(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No saved albums.\n")
	}
	r.printSection("Your albums", items)
	return nil
}

// LibraryArtists prints the artists the authenticated user follows.
func (r *Runner) LibraryArtists(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	items, err := r.catalog.FollowedArtists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("Not following any artists.\n")
	}
	r.printSection("Following", items)
	return nil
}

// ShowTrack prints a track's metadata.
func (r *Runner) ShowTrack(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	track, err := r.catalog.Track(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlainHeader(track.Name)
	r.writePlain("Artist: %s\n", track.Artist)
	r.writePlain("Album: %s\n", track.Album)
	r.writePlain("Length: %s\n", shared.FormatDuration(track.DurationMS))
	return nil
}

// ShowAlbum prints an album with its track listing.
func (r *Runner) ShowAlbum(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: album id is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	album, err := r.catalog.Album(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s — %s", album.Title, album.Artist))
	for i, track := range album.Tracks {
		r.writePlain("%d. %s", i+1, track.Name)
		if track.DurationMS > 0 {
			r.writePlain("  %s", shared.FormatDuration(track.DurationMS))
		}
		r.writePlain("\n")
	}
	return nil
}

// ShowArtist prints an artist profile with top tracks and albums.
func (r *Runner) ShowArtist(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	artist, err := r.catalog.Artist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}

	r.writePlainHeader(artist.Name)
	r.writePlain("Followers: %d\n", artist.Followers)
	if len(artist.Genres) > 0 {
		r.writePlain("Genres:")
		for _, genre := range artist.Genres {
			r.writePlain(" %s", genre)
		}
		r.writePlain("\n")
	}

	// Top tracks and albums degrade to empty lists on upstream failure.
	topTracks, err := r.catalog.ArtistTopTracks(ctx, id)
	if err != nil {
		return err
	}
	r.printSection("Top tracks", topTracks)

	albums, err := r.catalog.ArtistAlbums(ctx, id)
	if err != nil {
		return err
	}
	r.printSection("Albums", albums)

	return nil
}

// ShowCategories prints the browse categories.
func (r *Runner) ShowCategories(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	categories, err := r.catalog.Categories(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(categories, true)
	}

	for i, cat := range categories {
		r.writePlain("%d. %s  [%s]\n", i+1, cat.Name, cat.ID)
	}
	return nil
}

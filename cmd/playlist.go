package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/shared"
)

// PlaylistList lists the user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	playlists, err := r.catalog.UserPlaylists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, pl := range playlists {
		r.writePlain("%d. %s  [%s]\n", i+1, pl.Title, pl.ID)
	}
	return nil
}

// PlaylistShow prints a playlist's full track listing.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	r.logger.Infof("loading playlist %v", id)

	detail, err := r.catalog.Playlist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(detail.Title)
	r.writePlain("Tracks: %d\n\n", len(detail.Tracks))
	for i, track := range detail.Tracks {
		r.writePlain("%d. %s — %s  [%s]\n", i+1, track.Artist, track.Name, track.ID)
	}
	return nil
}

// PlaylistFind searches playlists by term.
func (r *Runner) PlaylistFind(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	if term == "" {
		return fmt.Errorf("%w: search term is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	items, err := r.catalog.PlaylistsBySearchTerm(ctx, term)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	r.writePlain("Found %d playlists:\n\n", len(items))
	for i, item := range items {
		r.writePlain("%d. %s  [%s]\n", i+1, item.Title, item.ID)
	}
	return nil
}

// PlaylistCreate creates a new private playlist owned by the signed-in user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := r.catalog.CreatePlaylist(ctx, name)
	if err != nil {
		return err
	}

	r.writePlain("✓ Playlist created: %s\n", name)
	r.writePlain("  ID: %s\n", id)
	return nil
}

// PlaylistAdd adds a track to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist-id")
	trackID := cmd.String("track-id")

	if err := r.requireCatalog(); err != nil {
		return err
	}

	if err := r.catalog.AddTrack(ctx, playlistID, trackID); err != nil {
		return err
	}

	return r.writePlain("✓ Track %s added to playlist %s\n", trackID, playlistID)
}

// PlaylistRemove removes a track from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist-id")
	trackID := cmd.String("track-id")

	if err := r.requireCatalog(); err != nil {
		return err
	}

	if err := r.catalog.RemoveTrack(ctx, playlistID, trackID); err != nil {
		return err
	}

	return r.writePlain("✓ Track %s removed from playlist %s\n", trackID, playlistID)
}

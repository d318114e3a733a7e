package spotify

import (
	"context"
	"fmt"
	"net/http"
)

// Playlist fetches a playlist with its full track listing.
//
// Unlike the section fetchers, failures here propagate so the caller can
// show them.
func (c *Client) Playlist(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	var pl wirePlaylist
	if err := c.getJSON(ctx, "/playlists/"+playlistID, &pl); err != nil {
		return nil, err
	}

	detail := &PlaylistDetail{
		ID:       pl.ID,
		Title:    pl.Name,
		ImageURL: firstImage(pl.Images),
	}
	for _, item := range pl.Tracks.Items {
		artist := firstArtistName(item.Track.Artists)
		if artist == "" {
			artist = "Unknown Artist"
		}
		detail.Tracks = append(detail.Tracks, PlaylistTrack{
			ID:       item.Track.ID,
			Name:     item.Track.Name,
			Artist:   artist,
			ImageURL: firstImage(item.Track.Album.Images),
		})
	}
	return detail, nil
}

// CreatePlaylist creates a private playlist for the authenticated user and
// returns its id.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (string, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	payload := map[string]any{"name": name, "public": false}
	endpoint := fmt.Sprintf("/users/%s/playlists", user.ID)
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// AddTrack appends a track to a playlist.
func (c *Client) AddTrack(ctx context.Context, playlistID, trackID string) error {
	payload := map[string]any{
		"uris": []string{"spotify:track:" + trackID},
	}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	return c.sendJSON(ctx, http.MethodPost, endpoint, payload, nil)
}

// RemoveTrack removes all occurrences of a track from a playlist.
func (c *Client) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	payload := map[string]any{
		"tracks": []map[string]string{
			{"uri": "spotify:track:" + trackID},
		},
	}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	return c.sendJSON(ctx, http.MethodDelete, endpoint, payload, nil)
}

package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/ayomide-o/sportify/internal/shared"
)

// madeForYouNames are the editorial playlists surfaced on the home screen.
var madeForYouNames = []string{
	"Discover Weekly",
	"Release Radar",
	"On Repeat",
	"Repeat Rewind",
	"Daily Mix 1",
	"Daily Mix 2",
	"Daily Mix 3",
}

// sectionErr decides whether a home/library section fetch propagates.
//
// Session errors always reach a layer that can force logout; anything else
// is logged and the section renders empty.
func (c *Client) sectionErr(section string, err error) error {
	if errors.Is(err, shared.ErrSessionExpired) || errors.Is(err, shared.ErrNoCredential) || errors.Is(err, shared.ErrUnauthorized) {
		return err
	}
	c.logger.Warnf("failed to fetch %s %v", section, err)
	return nil
}

// RecentlyPlayed returns the user's recently played tracks, deduplicated by
// track id.
func (c *Client) RecentlyPlayed(ctx context.Context) ([]ListItem, error) {
	var response struct {
		Items []struct {
			Track wireTrack `json:"track"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, "/me/player/recently-played?limit=50", &response); err != nil {
		return nil, c.sectionErr("recently played", err)
	}

	seen := map[string]bool{}
	items := []ListItem{}
	for _, entry := range response.Items {
		track := entry.Track
		if seen[track.ID] {
			continue
		}
		seen[track.ID] = true
		items = append(items, ListItem{
			ID:       track.ID,
			Title:    track.Name,
			ImageURL: firstImage(track.Album.Images),
			Subtitle: artistNames(track.Artists),
			Kind:     KindTrack,
		})
	}
	return items, nil
}

// MadeForYou resolves the editorial playlists by name, one search each.
func (c *Client) MadeForYou(ctx context.Context) ([]ListItem, error) {
	items := []ListItem{}
	for _, name := range madeForYouNames {
		var response struct {
			Playlists struct {
				Items []wirePlaylist `json:"items"`
			} `json:"playlists"`
		}
		endpoint := fmt.Sprintf("/search?q=%s&type=playlist&limit=1", url.QueryEscape(name))
		if err := c.getJSON(ctx, endpoint, &response); err != nil {
			return items, c.sectionErr("made for you", err)
		}
		if len(response.Playlists.Items) == 0 {
			continue
		}

		pl := response.Playlists.Items[0]
		items = append(items, ListItem{
			ID:       pl.ID,
			Title:    pl.Name,
			ImageURL: firstImage(pl.Images),
			Subtitle: "Made For You",
			Kind:     KindPlaylist,
		})
	}
	return items, nil
}

// UserPlaylists returns the user's own playlists.
func (c *Client) UserPlaylists(ctx context.Context) ([]ListItem, error) {
	var response struct {
		Items []wirePlaylist `json:"items"`
	}
	if err := c.getJSON(ctx, "/me/playlists?limit=10", &response); err != nil {
		return nil, c.sectionErr("user playlists", err)
	}

	items := []ListItem{}
	for _, pl := range response.Items {
		subtitle := pl.Owner.DisplayName
		if subtitle == "" {
			subtitle = "Playlist"
		}
		items = append(items, ListItem{
			ID:       pl.ID,
			Title:    pl.Name,
			ImageURL: firstImage(pl.Images),
			Subtitle: subtitle,
			Kind:     KindPlaylist,
		})
	}
	return items, nil
}

// UserAlbums returns the user's saved albums.
func (c *Client) UserAlbums(ctx context.Context) ([]ListItem, error) {
	var response struct {
		Items []struct {
			Album wireAlbum `json:"album"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, "/me/albums?limit=20", &response); err != nil {
		return nil, c.sectionErr("user albums", err)
	}

	items := []ListItem{}
	for _, entry := range response.Items {
		subtitle := firstArtistName(entry.Album.Artists)
		if subtitle == "" {
			subtitle = "Unknown Artist"
		}
		items = append(items, ListItem{
			ID:       entry.Album.ID,
			Title:    entry.Album.Name,
			ImageURL: firstImage(entry.Album.Images),
			Subtitle: subtitle,
			Kind:     KindAlbum,
		})
	}
	return items, nil
}

// FollowedArtists returns artists the user follows.
func (c *Client) FollowedArtists(ctx context.Context) ([]ListItem, error) {
	var response struct {
		Artists struct {
			Items []wireArtist `json:"items"`
		} `json:"artists"`
	}
	if err := c.getJSON(ctx, "/me/following?type=artist&limit=20", &response); err != nil {
		return nil, c.sectionErr("followed artists", err)
	}

	items := []ListItem{}
	for _, artist := range response.Artists.Items {
		items = append(items, ListItem{
			ID:       artist.ID,
			Title:    artist.Name,
			ImageURL: firstImage(artist.Images),
			Subtitle: "Artist",
			Kind:     KindArtist,
		})
	}
	return items, nil
}

// Categories returns browse category tiles.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var response struct {
		Categories struct {
			Items []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Icons []struct {
					URL string `json:"url"`
				} `json:"icons"`
			} `json:"items"`
		} `json:"categories"`
	}
	if err := c.getJSON(ctx, "/browse/categories?limit=30", &response); err != nil {
		return nil, c.sectionErr("categories", err)
	}

	categories := []Category{}
	for _, item := range response.Categories.Items {
		iconURL := ""
		if len(item.Icons) > 0 {
			iconURL = item.Icons[0].URL
		}
		categories = append(categories, Category{ID: item.ID, Name: item.Name, IconURL: iconURL})
	}
	return categories, nil
}

// Search runs a combined track/artist/album/playlist search.
//
// Unlike the section fetchers, search failures propagate so the caller can
// show them.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var response struct {
		Tracks struct {
			Items []wireTrack `json:"items"`
		} `json:"tracks"`
		Artists struct {
			Items []wireArtist `json:"items"`
		} `json:"artists"`
		Albums struct {
			Items []wireAlbum `json:"items"`
		} `json:"albums"`
		Playlists struct {
			Items []wirePlaylist `json:"items"`
		} `json:"playlists"`
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track,artist,album,playlist&limit=10", url.QueryEscape(query))
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	combined := []SearchResult{}
	for _, t := range response.Tracks.Items {
		combined = append(combined, SearchResult{
			ID:       t.ID,
			Name:     t.Name,
			Kind:     KindTrack,
			ImageURL: firstImage(t.Album.Images),
			SubText:  firstArtistName(t.Artists),
		})
	}
	for _, a := range response.Artists.Items {
		combined = append(combined, SearchResult{
			ID:       a.ID,
			Name:     a.Name,
			Kind:     KindArtist,
			ImageURL: firstImage(a.Images),
		})
	}
	for _, al := range response.Albums.Items {
		combined = append(combined, SearchResult{
			ID:       al.ID,
			Name:     al.Name,
			Kind:     KindAlbum,
			ImageURL: firstImage(al.Images),
			SubText:  firstArtistName(al.Artists),
		})
	}
	for _, pl := range response.Playlists.Items {
		combined = append(combined, SearchResult{
			ID:       pl.ID,
			Name:     pl.Name,
			Kind:     KindPlaylist,
			ImageURL: firstImage(pl.Images),
			SubText:  pl.Owner.DisplayName,
		})
	}
	return combined, nil
}

// Track fetches a single track's metadata.
func (c *Client) Track(ctx context.Context, trackID string) (*TrackDetail, error) {
	var track wireTrack
	if err := c.getJSON(ctx, "/tracks/"+trackID, &track); err != nil {
		return nil, err
	}

	return &TrackDetail{
		ID:         track.ID,
		Name:       track.Name,
		Artist:     artistNames(track.Artists),
		Album:      track.Album.Name,
		ImageURL:   firstImage(track.Album.Images),
		DurationMS: track.DurationMS,
	}, nil
}

// Album fetches an album with its track listing.
func (c *Client) Album(ctx context.Context, albumID string) (*AlbumDetail, error) {
	var response struct {
		wireAlbum
		Tracks struct {
			Items []wireTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := c.getJSON(ctx, "/albums/"+albumID, &response); err != nil {
		return nil, err
	}

	artist := firstArtistName(response.Artists)
	if artist == "" {
		artist = "Unknown Artist"
	}

	detail := &AlbumDetail{
		ID:       response.ID,
		Title:    response.Name,
		Artist:   artist,
		ImageURL: firstImage(response.Images),
	}
	for _, t := range response.Tracks.Items {
		detail.Tracks = append(detail.Tracks, AlbumTrack{
			ID:         t.ID,
			Name:       t.Name,
			Artist:     firstArtistName(t.Artists),
			DurationMS: t.DurationMS,
		})
	}
	return detail, nil
}

// Artist fetches an artist profile.
func (c *Client) Artist(ctx context.Context, artistID string) (*ArtistDetail, error) {
	var artist wireArtist
	if err := c.getJSON(ctx, "/artists/"+artistID, &artist); err != nil {
		return nil, err
	}

	return &ArtistDetail{
		ID:        artist.ID,
		Name:      artist.Name,
		ImageURL:  firstImage(artist.Images),
		Genres:    artist.Genres,
		Followers: artist.Followers.Total,
	}, nil
}

// ArtistTopTracks returns an artist's top tracks for the configured market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string) ([]ListItem, error) {
	var response struct {
		Tracks []wireTrack `json:"tracks"`
	}
	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", artistID, c.market)
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, c.sectionErr("artist top tracks", err)
	}

	items := []ListItem{}
	for _, t := range response.Tracks {
		items = append(items, ListItem{
			ID:       t.ID,
			Title:    t.Name,
			ImageURL: firstImage(t.Album.Images),
			Subtitle: artistNames(t.Artists),
			Kind:     KindTrack,
		})
	}
	return items, nil
}

// ArtistAlbums returns an artist's albums, singles, and compilations.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) ([]ListItem, error) {
	var response struct {
		Items []wireAlbum `json:"items"`
	}
	endpoint := fmt.Sprintf("/artists/%s/albums?include_groups=album,single,compilation&limit=20", artistID)
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, c.sectionErr("artist albums", err)
	}

	items := []ListItem{}
	for _, al := range response.Items {
		items = append(items, ListItem{
			ID:       al.ID,
			Title:    al.Name,
			ImageURL: firstImage(al.Images),
			Subtitle: firstArtistName(al.Artists),
			Kind:     KindAlbum,
		})
	}
	return items, nil
}

// PlaylistsBySearchTerm returns playlists matching a category or search term,
// dropping entries without a usable image.
func (c *Client) PlaylistsBySearchTerm(ctx context.Context, term string) ([]ListItem, error) {
	var response struct {
		Playlists struct {
			Items []wirePlaylist `json:"items"`
		} `json:"playlists"`
	}
	endpoint := fmt.Sprintf("/search?q=%s&type=playlist&market=%s&limit=20", url.QueryEscape(term), c.market)
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	items := []ListItem{}
	for _, pl := range response.Playlists.Items {
		if pl.ID == "" || pl.Name == "" || firstImage(pl.Images) == "" {
			continue
		}
		items = append(items, ListItem{
			ID:       pl.ID,
			Title:    pl.Name,
			ImageURL: firstImage(pl.Images),
			Kind:     KindPlaylist,
		})
	}
	return items, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var response struct {
		ID          string      `json:"id"`
		DisplayName string      `json:"display_name"`
		Email       string      `json:"email"`
		Images      []wireImage `json:"images"`
	}
	if err := c.getJSON(ctx, "/me", &response); err != nil {
		return nil, err
	}

	return &User{
		ID:          response.ID,
		DisplayName: response.DisplayName,
		Email:       response.Email,
		ImageURL:    firstImage(response.Images),
	}, nil
}

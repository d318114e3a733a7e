// Spotify Web API client for the catalog surface of the app.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

// Kind classifies a catalog item for rendering.
type Kind string

const (
	KindTrack    Kind = "track"
	KindPlaylist Kind = "playlist"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
)

// ListItem is the shared shape for anything rendered in a media list.
type ListItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"url"`
	Subtitle string `json:"subtitle,omitempty"`
	Kind     Kind   `json:"type"`
}

// Category is a browse category tile.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// SearchResult is one entry of a combined search.
type SearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     Kind   `json:"type"`
	ImageURL string `json:"album_image_url,omitempty"`
	SubText  string `json:"sub_text,omitempty"`
}

// PlaylistTrack is a track row within a playlist detail view.
type PlaylistTrack struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image"`
}

// PlaylistDetail is a playlist with its full track listing.
type PlaylistDetail struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"image"`
	Tracks   []PlaylistTrack `json:"tracks"`
}

// AlbumTrack is a track row within an album detail view.
type AlbumTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	DurationMS int    `json:"duration_ms"`
}

// AlbumDetail is an album with its track listing.
type AlbumDetail struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Artist   string       `json:"artist"`
	ImageURL string       `json:"image"`
	Tracks   []AlbumTrack `json:"tracks"`
}

// TrackDetail is a single track's metadata.
type TrackDetail struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ImageURL   string `json:"image"`
	DurationMS int    `json:"duration_ms"`
}

// ArtistDetail is an artist profile.
type ArtistDetail struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ImageURL  string   `json:"image"`
	Genres    []string `json:"genres"`
	Followers int      `json:"followers"`
}

// User is the authenticated user's profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	ImageURL    string `json:"image_url"`
}

// Wire types, trimmed to the fields the app reads.

type wireImage struct {
	URL string `json:"url"`
}

type wireArtist struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Genres []string    `json:"genres"`
	Images []wireImage `json:"images"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type wireAlbum struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Images  []wireImage  `json:"images"`
	Artists []wireArtist `json:"artists"`
}

type wireTrack struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	DurationMS int          `json:"duration_ms"`
	Album      wireAlbum    `json:"album"`
	Artists    []wireArtist `json:"artists"`
}

type wireOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type wirePlaylist struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
	Owner  wireOwner   `json:"owner"`
	Tracks struct {
		Items []struct {
			Track wireTrack `json:"track"`
		} `json:"items"`
	} `json:"tracks"`
}

func firstImage(images []wireImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func firstArtistName(artists []wireArtist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}

func artistNames(artists []wireArtist) string {
	names := ""
	for i, a := range artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}

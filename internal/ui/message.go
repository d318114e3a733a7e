package ui

import (
	"time"

	"github.com/ayomide-o/sportify/internal/player"
	"github.com/ayomide-o/sportify/internal/tasks"
)

// feedLoadedMsg carries the assembled home feed.
type feedLoadedMsg struct {
	feed *tasks.HomeFeed
	err  error
}

// detailLoadedMsg carries the track listing of a playlist, album, or artist.
type detailLoadedMsg struct {
	title  string
	tracks []trackRow
	err    error
}

// searchDoneMsg carries combined search results.
type searchDoneMsg struct {
	query string
	items []feedItem
	err   error
}

// previewResolvedMsg carries a preview lookup outcome for a pressed track.
type previewResolvedMsg struct {
	track player.Track
	err   error
}

// playerUpdateMsg mirrors [player.Update] into the Elm loop.
type playerUpdateMsg player.Update

// tickMsg drives the player pane's position display.
type tickMsg time.Time

// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view browsing workflow:
//  1. [HomeView] : Browse the home feed (recent tracks, mixes, playlists, albums, artists)
//  2. [SearchView] : Free-text catalog search
//  3. [DetailView] : Track listing for a playlist, album, or artist
//
// A mini player pane is rendered below every view. Pressing enter on a track
// resolves its preview clip and hands it to the playback controller; player
// state changes flow back into the model through a channel.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// playback keys (space, x) with contextual help displayed via charmbracelet/bubbles/help.
package ui

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/spotify"
)

var (
	_ list.Item = feedItem{}
	_ list.Item = trackItem{}
)

// feedItem wraps [spotify.ListItem] to implement [list.Item].
//
// The section name doubles as the description so that the flattened home
// feed stays legible without section headers.
type feedItem struct {
	item    spotify.ListItem
	section string
}

func (i feedItem) FilterValue() string { return i.item.Title }
func (i feedItem) Title() string       { return i.item.Title }
func (i feedItem) Description() string {
	desc := string(i.item.Kind)
	if i.item.Subtitle != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.Subtitle)
	}
	if i.section != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.section)
	}
	return desc
}

// trackRow is the view-level shape for a playable track line.
type trackRow struct {
	ID         string
	Title      string
	Artist     string
	ImageURL   string
	DurationMS int
}

// trackItem wraps a trackRow to implement [list.Item].
type trackItem struct {
	track trackRow
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.DurationMS > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.track.DurationMS))
	}
	return desc
}

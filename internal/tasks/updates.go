package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRecent Phase = iota
	FetchMixes
	FetchPlaylists
	FetchAlbums
	FetchArtists
	FetchCategories
)

func (p Phase) String() string {
	switch p {
	case FetchRecent:
		return "fetch_recent"
	case FetchMixes:
		return "fetch_mixes"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchAlbums:
		return "fetch_albums"
	case FetchArtists:
		return "fetch_artists"
	case FetchCategories:
		return "fetch_categories"
	default:
		return ""
	}
}

func fetchSectionUpdate(phase Phase, name string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Loading %s...", name),
	}
}

func sectionLoadedUpdate(phase Phase, name string, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func sectionFailedUpdate(phase Phase, name string, step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

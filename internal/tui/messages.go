package tui

import (
	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PlaylistsLoadedMsg signals that the canonical playlist list has been loaded
type PlaylistsLoadedMsg struct {
	Playlists []*domain.Playlist
	DraftIDs  map[string]bool
}

// PlaylistOpenedMsg carries the working copy of the selected playlist
type PlaylistOpenedMsg struct {
	Playlist *domain.Playlist
}

// PlaylistCreatedMsg signals that a new playlist was created
type PlaylistCreatedMsg struct {
	Playlist *domain.Playlist
}

// PlaylistChangedMsg carries the updated draft after a mutation, a save
// or a reset. Status is a short human line for the status bar.
type PlaylistChangedMsg struct {
	Playlist *domain.Playlist
	Status   string
}

// SearchResultsMsg signals that item search results are ready
type SearchResultsMsg struct {
	Matches []search.Match
	Query   string
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/playlist"
	"github.com/mmcdole/cueset/internal/search"
)

// Command factories for store operations

// LoadPlaylistsCmd loads the canonical playlist list and records which ids
// carry a draft entry.
func LoadPlaylistsCmd(repo *playlist.Repository) tea.Cmd {
	return func() tea.Msg {
		playlists, err := repo.List()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading playlists"}
		}

		draftIDs, err := repo.DraftIDs()
		if err != nil {
			return ErrMsg{Err: err, Context: "checking drafts"}
		}
		return PlaylistsLoadedMsg{Playlists: playlists, DraftIDs: draftIDs}
	}
}

// OpenPlaylistCmd resolves the working copy, seeding the draft on first open
func OpenPlaylistCmd(sync *playlist.Synchronizer, id string) tea.Cmd {
	return func() tea.Msg {
		p, err := sync.Overlay(id)
		if err != nil {
			return ErrMsg{Err: err, Context: "opening playlist"}
		}
		return PlaylistOpenedMsg{Playlist: p}
	}
}

// CreatePlaylistCmd creates a canonical playlist with the given name
func CreatePlaylistCmd(repo *playlist.Repository, name string) tea.Cmd {
	return func() tea.Msg {
		p, err := repo.Create(name)
		if err != nil {
			return ErrMsg{Err: err, Context: "creating playlist"}
		}
		return PlaylistCreatedMsg{Playlist: p}
	}
}

// SaveCmd promotes the draft into the canonical store
func SaveCmd(sync *playlist.Synchronizer, id string) tea.Cmd {
	return func() tea.Msg {
		p, err := sync.Save(id)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving draft"}
		}
		return PlaylistChangedMsg{Playlist: p, Status: "draft saved"}
	}
}

// ResetCmd discards the draft in favor of the canonical entry
func ResetCmd(sync *playlist.Synchronizer, id string) tea.Cmd {
	return func() tea.Msg {
		p, err := sync.Reset(id)
		if err != nil {
			return ErrMsg{Err: err, Context: "resetting draft"}
		}
		return PlaylistChangedMsg{Playlist: p, Status: "draft reset"}
	}
}

// DeleteNodeCmd removes an item or folder from the draft
func DeleteNodeCmd(mut *playlist.Mutator, playlistID, nodeID string) tea.Cmd {
	return func() tea.Msg {
		p, err := mut.DeleteItem(playlistID, nodeID)
		if err != nil {
			return ErrMsg{Err: err, Context: "deleting node"}
		}
		return PlaylistChangedMsg{Playlist: p, Status: "node deleted"}
	}
}

// SearchItemsCmd runs a ranked fuzzy search across the working copy
func SearchItemsCmd(p *domain.Playlist, query string) tea.Cmd {
	return func() tea.Msg {
		return SearchResultsMsg{Matches: search.Items(p, query), Query: query}
	}
}

// Package tui implements the terminal interface: a playlist sidebar on the
// left and the selected playlist's tree on the right, editing the draft store
// until the user saves or resets.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/playlist"
	"github.com/mmcdole/cueset/internal/search"
)

// ApplicationState represents the current input state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateSearching
	StateNaming
	StateHelp
)

type pane int

const (
	paneSidebar pane = iota
	paneTree
)

// Layout
const (
	SidebarPercent = 30
	MinSidebarCols = 20
	ChromeHeight   = 1 // status bar
)

// treeRow is one rendered line of the playlist tree
type treeRow struct {
	nodeID string
	depth  int
	folder bool
	label  string
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	// Services
	Repo *playlist.Repository
	Mut  *playlist.Mutator
	Sync *playlist.Synchronizer

	Keys   KeyMap
	Logger *slog.Logger

	Width  int
	Height int

	// Sidebar
	Playlists   []*domain.Playlist
	DraftIDs    map[string]bool
	FilteredIdx []int // indexes into Playlists; nil = unfiltered
	Cursor      int
	FilterInput textinput.Model

	// Tree pane
	Selected   *domain.Playlist
	Rows       []treeRow
	TreeCursor int
	Viewport   viewport.Model

	// Item search
	SearchInput textinput.Model
	Matches     []search.Match

	// Name prompt for new playlists
	NameInput textinput.Model

	Focus  pane
	Status string
	Err    error
}

// NewModel creates the initial application model
func NewModel(repo *playlist.Repository, mut *playlist.Mutator, sync *playlist.Synchronizer, logger *slog.Logger) Model {
	filter := textinput.New()
	filter.Placeholder = "filter playlists"
	filter.CharLimit = 64

	searchIn := textinput.New()
	searchIn.Placeholder = "find item"
	searchIn.CharLimit = 64

	name := textinput.New()
	name.Placeholder = "playlist name"
	name.CharLimit = 128

	return Model{
		State:       StateBrowsing,
		Repo:        repo,
		Mut:         mut,
		Sync:        sync,
		Keys:        DefaultKeyMap(),
		Logger:      logger,
		FilterInput: filter,
		SearchInput: searchIn,
		NameInput:   name,
		Focus:       paneSidebar,
	}
}

// Init kicks off the first playlist load
func (m Model) Init() tea.Cmd {
	return LoadPlaylistsCmd(m.Repo)
}

// Update handles all incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Viewport = viewport.New(m.treeWidth(), m.paneHeight())
		m.Ready = true
		m.refreshViewport()
		return m, nil

	case ErrMsg:
		m.Err = msg
		m.Status = ""
		m.Logger.Error("tui operation failed", "error", msg.Err, "context", msg.Context)
		return m, nil

	case PlaylistsLoadedMsg:
		m.Playlists = msg.Playlists
		m.DraftIDs = msg.DraftIDs
		if m.Cursor >= len(m.visible()) {
			m.Cursor = 0
		}
		return m, nil

	case PlaylistOpenedMsg:
		m.Selected = msg.Playlist
		if m.DraftIDs == nil {
			m.DraftIDs = make(map[string]bool)
		}
		m.DraftIDs[msg.Playlist.ID] = true
		m.Rows = flatten(msg.Playlist.RootChildren, 0, nil)
		m.TreeCursor = 0
		m.Focus = paneTree
		m.Matches = nil
		m.Err = nil
		m.refreshViewport()
		return m, nil

	case PlaylistCreatedMsg:
		m.Status = fmt.Sprintf("created %q", msg.Playlist.Name)
		return m, LoadPlaylistsCmd(m.Repo)

	case PlaylistChangedMsg:
		m.Selected = msg.Playlist
		m.Rows = flatten(msg.Playlist.RootChildren, 0, nil)
		if m.TreeCursor >= len(m.Rows) {
			m.TreeCursor = max(0, len(m.Rows)-1)
		}
		m.Status = msg.Status
		m.Err = nil
		m.refreshViewport()
		return m, LoadPlaylistsCmd(m.Repo)

	case SearchResultsMsg:
		m.Matches = msg.Matches
		if len(msg.Matches) == 0 {
			m.Status = fmt.Sprintf("no items match %q", msg.Query)
		} else {
			m.Status = fmt.Sprintf("%d items match %q", len(msg.Matches), msg.Query)
			m.jumpTo(msg.Matches[0].Item.ID)
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateFiltering:
		return m.handleFilterKey(msg)
	case StateSearching:
		return m.handleSearchKey(msg)
	case StateNaming:
		return m.handleNamingKey(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	}
	return m.handleBrowsingKey(msg)
}

func (m Model) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, k.Escape):
		m.Err = nil
		m.Status = ""
		m.Matches = nil
		m.FilteredIdx = nil
		m.FilterInput.SetValue("")
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, k.Tab):
		if m.Selected != nil {
			if m.Focus == paneSidebar {
				m.Focus = paneTree
			} else {
				m.Focus = paneSidebar
			}
		}
		return m, nil

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, k.Home):
		m.setCursor(0)
		return m, nil

	case key.Matches(msg, k.End):
		if m.Focus == paneSidebar {
			m.setCursor(len(m.visible()) - 1)
		} else {
			m.setCursor(len(m.Rows) - 1)
		}
		return m, nil

	case key.Matches(msg, k.Enter):
		if m.Focus == paneSidebar {
			if p := m.playlistUnderCursor(); p != nil {
				return m, OpenPlaylistCmd(m.Sync, p.ID)
			}
		}
		return m, nil

	case key.Matches(msg, k.Refresh):
		return m, LoadPlaylistsCmd(m.Repo)

	case key.Matches(msg, k.Filter):
		m.State = StateFiltering
		m.Focus = paneSidebar
		m.FilterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Search):
		if m.Selected == nil {
			return m, nil
		}
		m.State = StateSearching
		m.SearchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.NewPlaylist):
		m.State = StateNaming
		m.NameInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Save):
		if m.Selected != nil {
			return m, SaveCmd(m.Sync, m.Selected.ID)
		}
		return m, nil

	case key.Matches(msg, k.Reset):
		if m.Selected != nil {
			return m, ResetCmd(m.Sync, m.Selected.ID)
		}
		return m, nil

	case key.Matches(msg, k.Delete):
		if m.Focus == paneTree && m.Selected != nil && m.TreeCursor < len(m.Rows) {
			return m, DeleteNodeCmd(m.Mut, m.Selected.ID, m.Rows[m.TreeCursor].nodeID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.FilterInput.Blur()
		m.FilterInput.SetValue("")
		m.FilteredIdx = nil
		return m, nil
	case "enter":
		m.State = StateBrowsing
		m.FilterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.SearchInput.Blur()
		m.SearchInput.SetValue("")
		return m, nil
	case "enter":
		m.State = StateBrowsing
		m.SearchInput.Blur()
		query := m.SearchInput.Value()
		m.SearchInput.SetValue("")
		return m, SearchItemsCmd(m.Selected, query)
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.NameInput.Blur()
		m.NameInput.SetValue("")
		return m, nil
	case "enter":
		m.State = StateBrowsing
		m.NameInput.Blur()
		name := strings.TrimSpace(m.NameInput.Value())
		m.NameInput.SetValue("")
		if name == "" {
			return m, nil
		}
		return m, CreatePlaylistCmd(m.Repo, name)
	}

	var cmd tea.Cmd
	m.NameInput, cmd = m.NameInput.Update(msg)
	return m, cmd
}

// applyFilter narrows the sidebar to playlists fuzzily matching the filter
// query, case insensitive.
func (m *Model) applyFilter() {
	query := m.FilterInput.Value()
	if query == "" {
		m.FilteredIdx = nil
		return
	}

	lowerNames := make([]string, len(m.Playlists))
	for i, p := range m.Playlists {
		lowerNames[i] = strings.ToLower(p.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerNames)
	m.FilteredIdx = make([]int, len(matches))
	for i, match := range matches {
		m.FilteredIdx[i] = match.Index
	}
	m.Cursor = 0
}

// visible returns the indexes of playlists shown in the sidebar
func (m Model) visible() []int {
	if m.FilteredIdx != nil {
		return m.FilteredIdx
	}
	all := make([]int, len(m.Playlists))
	for i := range m.Playlists {
		all[i] = i
	}
	return all
}

func (m Model) playlistUnderCursor() *domain.Playlist {
	vis := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(vis) {
		return nil
	}
	return m.Playlists[vis[m.Cursor]]
}

func (m *Model) moveCursor(delta int) {
	if m.Focus == paneSidebar {
		m.setCursor(m.Cursor + delta)
	} else {
		m.setCursor(m.TreeCursor + delta)
	}
}

func (m *Model) setCursor(pos int) {
	if m.Focus == paneSidebar {
		m.Cursor = clamp(pos, 0, len(m.visible())-1)
		return
	}
	m.TreeCursor = clamp(pos, 0, len(m.Rows)-1)
	m.refreshViewport()
	m.scrollToCursor()
}

// jumpTo moves the tree cursor to the row holding the given node id
func (m *Model) jumpTo(nodeID string) {
	for i, row := range m.Rows {
		if row.nodeID == nodeID {
			m.TreeCursor = i
			m.scrollToCursor()
			return
		}
	}
}

func (m *Model) scrollToCursor() {
	if !m.Ready {
		return
	}
	if m.TreeCursor < m.Viewport.YOffset {
		m.Viewport.SetYOffset(m.TreeCursor)
	} else if m.TreeCursor >= m.Viewport.YOffset+m.Viewport.Height {
		m.Viewport.SetYOffset(m.TreeCursor - m.Viewport.Height + 1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// flatten renders the forest depth first into display rows
func flatten(forest domain.Nodes, depth int, acc []treeRow) []treeRow {
	for _, n := range forest {
		switch v := n.(type) {
		case *domain.Folder:
			acc = append(acc, treeRow{nodeID: v.ID, depth: depth, folder: true, label: v.Name})
			acc = flatten(v.Children, depth+1, acc)
		case *domain.Item:
			acc = append(acc, treeRow{nodeID: v.ID, depth: depth, label: v.DisplayName()})
		}
	}
	return acc
}

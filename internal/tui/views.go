package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cueset/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "loading..."
	}
	if m.State == StateHelp {
		return m.helpView()
	}

	sidebar := m.sidebarView()
	tree := m.treeView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, tree)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusView())
}

func (m Model) sidebarWidth() int {
	w := m.Width * SidebarPercent / 100
	if w < MinSidebarCols {
		w = MinSidebarCols
	}
	return w
}

func (m Model) treeWidth() int {
	// account for both panes' borders
	w := m.Width - m.sidebarWidth() - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) paneHeight() int {
	h := m.Height - ChromeHeight - 3 // border and pane title
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Playlists"))
	b.WriteString("\n")

	if m.State == StateFiltering {
		b.WriteString(m.FilterInput.View())
		b.WriteString("\n")
	}

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(styles.DimStyle.Render("no playlists"))
	}
	for row, idx := range vis {
		p := m.Playlists[idx]
		marker := styles.UnmodifiedChar
		if m.DraftIDs[p.ID] {
			marker = styles.DraftedStyle.Render(styles.DraftedChar)
		}
		line := fmt.Sprintf("%s %s (%d)", marker, p.Name, p.Total)
		if row == m.Cursor && m.Focus == paneSidebar {
			line = styles.HighlightStyle.Render(line)
		} else if m.Selected != nil && p.ID == m.Selected.ID {
			line = styles.AccentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	border := styles.InactiveBorder
	if m.Focus == paneSidebar {
		border = styles.ActiveBorder
	}
	return border.Width(m.sidebarWidth()).Height(m.paneHeight() + 1).Render(b.String())
}

func (m Model) treeView() string {
	var title string
	switch {
	case m.State == StateNaming:
		title = styles.TitleStyle.Render("New playlist:") + " " + m.NameInput.View()
	case m.Selected == nil:
		title = styles.DimStyle.Render("no playlist open")
	case m.State == StateSearching:
		title = styles.TitleStyle.Render(m.Selected.Name) + " " + m.SearchInput.View()
	default:
		title = styles.TitleStyle.Render(m.Selected.Name) +
			styles.SubtitleStyle.Render(fmt.Sprintf("  %d items", m.Selected.Total))
	}

	border := styles.InactiveBorder
	if m.Focus == paneTree {
		border = styles.ActiveBorder
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.Viewport.View())
	return border.Width(m.treeWidth()).Height(m.paneHeight() + 1).Render(content)
}

// refreshViewport re-renders the tree rows into the viewport buffer
func (m *Model) refreshViewport() {
	if !m.Ready {
		return
	}

	matched := make(map[string]bool, len(m.Matches))
	for _, hit := range m.Matches {
		matched[hit.Item.ID] = true
	}

	lines := make([]string, 0, len(m.Rows))
	for i, row := range m.Rows {
		indent := strings.Repeat("  ", row.depth)
		label := row.label
		if row.folder {
			label = styles.FolderStyle.Render("▸ " + label)
		} else if matched[row.nodeID] {
			label = styles.SuccessStyle.Render(label)
		} else {
			label = styles.ItemStyle.Render(label)
		}
		line := indent + label
		if i == m.TreeCursor && m.Focus == paneTree {
			line = indent + styles.HighlightStyle.Render(row.label)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = []string{styles.DimStyle.Render("empty playlist")}
	}
	m.Viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) statusView() string {
	var left string
	switch {
	case m.Err != nil:
		left = styles.ErrorStyle.Render(m.Err.Error())
	case m.Status != "":
		left = styles.SuccessStyle.Render(m.Status)
	default:
		left = styles.HelpStyle.Render("enter open · s save · R reset · d delete · / filter · f find · n new · ? help")
	}
	return styles.StatusBarStyle.Width(m.Width).Render(left)
}

func (m Model) helpView() string {
	rows := []struct{ keys, desc string }{
		{"j/k, ↓/↑", "move"},
		{"g / G", "top / bottom"},
		{"tab", "switch pane"},
		{"enter", "open playlist"},
		{"s", "save draft to canonical"},
		{"R", "reset draft from canonical"},
		{"d", "delete node under cursor"},
		{"/", "filter playlists"},
		{"f", "find item in playlist"},
		{"n", "new playlist"},
		{"r", "reload playlists"},
		{"esc", "clear filter, search and errors"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.AccentStyle.Render(fmt.Sprintf("%-10s", r.keys)),
			styles.SubtitleStyle.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, b.String())
}

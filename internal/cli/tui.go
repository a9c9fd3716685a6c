package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jtran/techtree/pkg/issuegraph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// GraphModel is the bubbletea model for browsing the issue graph.
type GraphModel struct {
	Graph  *issuegraph.Graph
	Cursor int
	Height int
	Offset int

	// Search and state toggles narrow the visible rows.
	Search     string
	Searching  bool
	ShowOpen   bool
	ShowClosed bool

	visible []*issuegraph.Node
}

// NewGraphModel creates a graph browser over a finalized graph.
func NewGraphModel(g *issuegraph.Graph) GraphModel {
	m := GraphModel{
		Graph:      g,
		Height:     15,
		ShowOpen:   true,
		ShowClosed: true,
	}
	m.recompute()
	return m
}

// recompute rebuilds the visible row list from the graph filter, the
// state toggles, and the search text.
func (m *GraphModel) recompute() {
	query := strings.ToLower(m.Search)
	m.visible = m.visible[:0]
	for _, n := range m.Graph.Nodes() {
		if !m.Graph.Visible(n) {
			continue
		}
		if n.IsClosed() && !m.ShowClosed {
			continue
		}
		if !n.IsClosed() && !m.ShowOpen {
			continue
		}
		if query != "" && !matchesQuery(n, query) {
			continue
		}
		m.visible = append(m.visible, n)
	}
	if m.Cursor >= len(m.visible) {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

// matchesQuery reports whether the lowercased query matches the node
// title or any of its labels.
func matchesQuery(n *issuegraph.Node, query string) bool {
	if strings.Contains(strings.ToLower(n.Text), query) {
		return true
	}
	for _, label := range n.Labels {
		if strings.Contains(strings.ToLower(label), query) {
			return true
		}
	}
	return false
}

func (m GraphModel) Init() tea.Cmd {
	return nil
}

func (m GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "/":
			m.Searching = true
		case "o":
			m.ShowOpen = !m.ShowOpen
			m.recompute()
		case "c":
			m.ShowClosed = !m.ShowClosed
			m.recompute()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GraphModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.Searching = false
	case "ctrl+c":
		return m, tea.Quit
	case "backspace":
		if m.Search != "" {
			m.Search = m.Search[:len(m.Search)-1]
			m.recompute()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.Search += string(msg.Runes)
			m.recompute()
		}
	}
	return m, nil
}

func (m GraphModel) View() string {
	var b strings.Builder

	title := m.Graph.Title()
	if title == "" {
		title = "Dependency Graph"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("j/k navigate  / search  o open  c closed  q quit"))
	b.WriteString("\n")
	if m.Searching || m.Search != "" {
		b.WriteString(StyleValue.Render("search: " + m.Search))
		if m.Searching {
			b.WriteString(StyleValue.Render("█"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching issues"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		state := "open"
		if n.IsClosed() {
			state = "done"
		}

		rows = append(rows, []string{
			cursor,
			truncate(n.Text, 50),
			state,
			fmt.Sprintf("%d", len(n.DependsOnIDs)),
			fmt.Sprintf("%d", n.BlocksCount()),
			formatRelativeTime(n.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Issue", "State", "Deps", "Blocks", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.visible) {
				return lipgloss.NewStyle()
			}
			n := m.visible[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				base = base.Bold(true)
				if n.IsClosed() {
					return base.Foreground(colorGray)
				}
				return base.Foreground(colorGreen)
			}
			if n.IsClosed() {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	b.WriteString("\n")

	b.WriteString(m.detailView())
	return b.String()
}

// detailView shows the selected issue's URL, projects, and labels.
func (m GraphModel) detailView() string {
	if m.Cursor >= len(m.visible) {
		return ""
	}
	n := m.visible[m.Cursor]

	var b strings.Builder
	if n.URL != "" {
		b.WriteString("  " + StyleLink.Render(n.URL) + "\n")
	}
	if len(n.ProjectTitles) > 0 {
		b.WriteString("  " + listDimStyle.Render("projects: "+strings.Join(n.ProjectTitles, ", ")) + "\n")
	}
	if len(n.Labels) > 0 {
		b.WriteString("  " + listDimStyle.Render("labels: "+strings.Join(n.Labels, ", ")) + "\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

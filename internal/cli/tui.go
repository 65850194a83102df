package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/igarnier/cosetta/pkg/catalog"
	"github.com/igarnier/cosetta/pkg/coset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// watchModel - Live enumeration progress
// =============================================================================

// watchProgressMsg carries a progress sample from the enumeration loop.
type watchProgressMsg coset.ProgressInfo

// watchDoneMsg signals that the pipeline finished.
type watchDoneMsg struct{ err error }

// watchTickMsg refreshes the elapsed time display.
type watchTickMsg time.Time

// watchModel is the bubbletea model for live enumeration progress.
type watchModel struct {
	name      string
	allocated int
	live      int
	start     time.Time
	done      bool
	err       error
}

// newWatchModel creates a progress model for the named presentation.
func newWatchModel(name string) watchModel {
	return watchModel{name: name, start: time.Now()}
}

func watchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case watchProgressMsg:
		m.allocated = msg.Allocated
		m.live = msg.Live
	case watchDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case watchTickMsg:
		if !m.done {
			return m, watchTick()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	title := "Enumerating cosets"
	if m.name != "" {
		title = fmt.Sprintf("Enumerating cosets of %s", m.name)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	merged := m.allocated - m.live
	b.WriteString(fmt.Sprintf("  allocated  %s\n", StyleNumber.Render(fmt.Sprintf("%d", m.allocated))))
	b.WriteString(fmt.Sprintf("  live       %s\n", StyleNumber.Render(fmt.Sprintf("%d", m.live))))
	b.WriteString(fmt.Sprintf("  merged     %s\n", StyleDim.Render(fmt.Sprintf("%d", merged))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  elapsed %s · q to abort",
		time.Since(m.start).Round(100*time.Millisecond))))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// CatalogListModel - Interactive catalog browsing
// =============================================================================

// CatalogListModel is the bubbletea model for interactive catalog browsing.
type CatalogListModel struct {
	Entries  []catalog.Entry
	Cursor   int
	Selected *catalog.Entry
	Height   int
	Offset   int
}

// NewCatalogListModel creates a new catalog list model.
func NewCatalogListModel(entries []catalog.Entry) CatalogListModel {
	return CatalogListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m CatalogListModel) Init() tea.Cmd {
	return nil
}

func (m CatalogListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Entries[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CatalogListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Catalog"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show table  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := e.Name
		if name == "" {
			name = "—"
		}

		rows = append(rows, []string{
			cursor,
			name,
			fmt.Sprintf("%d", e.Index),
			strings.Join(e.Generators, ", "),
			fmt.Sprintf("%d", len(e.Relators)),
			formatRelativeTime(e.CreatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Group", "Index", "Generators", "Relators", "Recorded").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

func formatRelativeTime(t time.Time) string {
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

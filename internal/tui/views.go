package tui

import (
	"fmt"
	"strings"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}

	tab := m.current()
	if tab == nil {
		sections = append(sections, m.theme.Subtitle.Render("Nothing to show."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if tab.state.Banner != nil {
		sections = append(sections, m.theme.Banner.Render(
			"Refresh failed: "+common.Describe(tab.state.Banner)+"  (Esc to dismiss)"))
	}
	if m.flash != "" {
		style := m.theme.Flash
		if m.flashErr {
			style = m.theme.StatusBad
		}
		sections = append(sections, style.Render(m.flash))
	}

	switch {
	case tab.state.Err != nil && !tab.state.Mounted:
		sections = append(sections, m.renderErrorPage(tab))
	case !tab.state.Mounted:
		sections = append(sections, fmt.Sprintf("%s Loading %s...", m.spinner.View(), strings.ToLower(tab.Title)))
	default:
		sections = append(sections, m.renderToolbar(tab), m.renderTable(tab), m.renderFooter(tab))
	}

	sections = append(sections, m.renderPrompt(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, nonEmpty(sections)...)
}

func (m Model) renderHeader() string {
	titles := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			titles = append(titles, m.theme.TabActive.Render(t.Title))
		} else {
			titles = append(titles, m.theme.TabInactive.Render(t.Title))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Title.Render("ShopDesk Admin"), "  ", strings.Join(titles, " "))
	if m.unread > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ",
			m.theme.Badge.Render(fmt.Sprintf("🔔 %d", m.unread)))
	}
	return header
}

func (m Model) renderErrorPage(tab *Tab) string {
	body := fmt.Sprintf("Failed to load %s\n\n%s\n\nPress r to retry.",
		strings.ToLower(tab.Title), common.Describe(tab.state.Err))
	return m.theme.ErrorPage.Render(body)
}

func (m Model) renderToolbar(tab *Tab) string {
	parts := []string{}
	if f := tab.filterSummary(); f != "" {
		parts = append(parts, f)
	}
	if m.mode == ModeSearch {
		parts = append(parts, m.search.View())
	} else if tab.search != "" {
		parts = append(parts, "search: "+tab.search)
	}
	return m.theme.Subtitle.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderTable(tab *Tab) string {
	rows := tab.table.Visible()
	if len(rows) == 0 {
		return m.theme.Subtitle.Render("No records found.")
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.theme.Border)).
		Headers(m.headers(tab)...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && col == tab.column:
				return m.theme.SortedHeader
			case row == table.HeaderRow:
				return m.theme.Header
			case row == tab.cursor:
				return m.theme.Selected
			default:
				return m.theme.Cell
			}
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.Render()
}

// headers marks the primary sort column with its direction.
func (m Model) headers(tab *Tab) []string {
	cols := tab.table.Columns()
	out := make([]string, len(cols))
	copy(out, cols)
	if order := tab.table.Order(); len(order) > 0 && order[0].Column < len(out) {
		out[order[0].Column] += sortArrow(order[0])
	}
	return out
}

func sortArrow(s grid.SortSpec) string {
	if s.Desc {
		return " ▼"
	}
	return " ▲"
}

func (m Model) renderFooter(tab *Tab) string {
	t := tab.table
	parts := []string{
		fmt.Sprintf("Page %d/%d", t.Page()+1, t.Pages()),
		fmt.Sprintf("%d of %d records", t.Matches(), t.Len()),
	}
	if tab.pagination.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d on server", tab.pagination.Total))
	}
	if !tab.state.LastUpdated.IsZero() {
		parts = append(parts, "Last updated "+tab.state.LastUpdated.Format("15:04:05"))
	}
	if tab.state.Refreshing {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	return m.theme.Footer.Render(strings.Join(parts, " · "))
}

func (m Model) renderPrompt() string {
	switch {
	case m.mode == ModeConfirm && m.pending != nil:
		a := m.pending.action
		return m.theme.Prompt.Render(fmt.Sprintf("%s %s %s? (y/n)", a.Verb, a.Noun, m.pending.id))
	case m.busy:
		return m.spinner.View() + " Working..."
	}
	return ""
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(s)
}

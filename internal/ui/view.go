package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/recruitflow/internal/kanban"
)

// View renders the board, the inspector panel when open, and the footer.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	if m.loading || m.board == nil {
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.kind.Plural())
	}

	body := m.renderLanes()
	if m.inspector.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, strings.Repeat(" ", laneGap), m.renderInspector())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("%s pipeline", m.kind.Label())
	info := fmt.Sprintf("%d %s", len(m.board.Items()), m.kind.Plural())
	if n := m.board.PendingCount(); n > 0 {
		info += fmt.Sprintf(", %d saving", n)
	}

	line := styles.title.UnsetMarginBottom().Render(title) + "  " + styles.muted.Render(info)
	switch {
	case m.searching:
		line += "  " + m.search.View()
	case m.query != "":
		line += "  " + styles.warn.Render(fmt.Sprintf("filter: %q (esc to clear)", m.query))
	}
	return line + "\n"
}

func (m *Model) renderLanes() string {
	lanes := make([]string, 0, len(m.lanes)*2)
	for i, items := range m.lanes {
		if i > 0 {
			lanes = append(lanes, strings.Repeat(" ", laneGap))
		}
		lanes = append(lanes, m.renderLane(i, items))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

func (m *Model) renderLane(i int, items []kanban.Item) string {
	name := m.geo.lanes[i]
	style := styles.lane
	switch {
	case i >= m.geo.stages:
		style = styles.laneLocked
	case m.drag.Dragging() && m.drag.Over() == name:
		style = styles.laneTarget
	case i == m.lane:
		style = styles.laneFocused
	}

	inner := m.geo.laneW - 2
	head := fmt.Sprintf("%s (%d)", name, len(items))
	if i >= m.geo.stages {
		head += " read-only"
	}
	offset := m.geo.offsets[i]
	rows := m.geo.visibleRows()
	if offset > 0 {
		head += " ↑"
	}
	if len(items) > offset+rows {
		head += " ↓"
	}

	parts := []string{lipgloss.NewStyle().Bold(true).Render(truncate(head, inner))}
	for r := offset; r < len(items) && r < offset+rows; r++ {
		parts = append(parts, m.renderCard(items[r], inner, i == m.lane && r == m.row))
	}

	return style.Width(inner).Height(m.geo.laneHeight() - 2).Render(strings.Join(parts, "\n"))
}

func (m *Model) renderCard(item kanban.Item, width int, focused bool) string {
	style := styles.card
	if focused {
		style = styles.cardActive
	}
	if active, ok := m.drag.Active(); ok && active.ID == item.ID {
		style = styles.cardGhost
	}

	text := width - 4
	title := item.Title
	if m.board.Pending(item.ID) {
		title = "⟳ " + title
	}

	sub := item.Subtitle
	if len(item.Tags) > 0 {
		sub = strings.TrimSpace(sub + " · " + strings.Join(item.Tags, ", "))
	}
	if item.Salary != nil {
		sub += " · " + item.Salary.String()
	}

	body := lipgloss.NewStyle().Bold(true).Render(truncate(title, text)) + "\n" + styles.muted.Render(truncate(sub, text))
	return style.Width(width - 2).Render(body)
}

func (m *Model) renderInspector() string {
	item, _ := m.inspector.Selected()
	width := m.panelWidth() - 4

	header := []string{
		lipgloss.NewStyle().Bold(true).Foreground(styles.accent).Render(truncate(item.Title, width)),
		styles.muted.Render(truncate(item.Subtitle, width)),
		fmt.Sprintf("Stage: %s", item.Stage),
	}
	if m.board.Pending(item.ID) {
		header = append(header, styles.warn.Render("Saving stage change..."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(header, "\n"),
		"",
		m.detail.View(),
		m.picker.View(),
	)
	return styles.panel.Width(m.panelWidth() - 2).Height(m.geo.laneHeight() - 2).Render(content)
}

// renderDetailBody renders the inspector's scrollable section: fields, history, or the inline error.
func (m *Model) renderDetailBody() string {
	if m.inspector == nil {
		return ""
	}

	if err := m.inspector.Err(); err != nil {
		return styles.err.Render(fmt.Sprintf("Failed to load details: %v", err))
	}

	detail, ok := m.inspector.Detail()
	if !ok {
		return styles.help.Render("Loading details...")
	}

	var b strings.Builder
	for _, f := range detail.Fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", styles.muted.Render(f.Label), f.Value)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Stage history"))
	b.WriteString("\n")
	if len(detail.History) == 0 {
		b.WriteString(styles.help.Render("No stage changes yet"))
	}
	for _, h := range detail.History {
		fmt.Fprintf(&b, "%s  %s → %s", h.At.Format("2006-01-02"), h.From, h.To)
		if h.By != "" {
			fmt.Fprintf(&b, " by %s", h.By)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case m.drag.Dragging():
		active, _ := m.drag.Active()
		over := m.drag.Over()
		if over == "" {
			over = "no stage"
		}
		status = styles.ok.Render(fmt.Sprintf("Dragging %s → %s", active.Title, over))
	case m.board.PendingCount() > 0:
		status = styles.warn.Render(fmt.Sprintf("Saving %d stage change(s)...", m.board.PendingCount()))
	default:
		if item, ok := m.focused(); ok {
			status = styles.muted.Render(fmt.Sprintf("%s · %s", item.Title, item.Stage))
		}
	}

	var notes []string
	for _, t := range m.toasts.visible(3) {
		switch t.level {
		case toastSuccess:
			notes = append(notes, styles.ok.Render("✓ "+t.message))
		case toastFailure:
			notes = append(notes, styles.err.Render("✗ "+t.message))
		default:
			notes = append(notes, styles.warn.Render(t.message))
		}
	}

	var helpView string
	switch {
	case m.showHelp:
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	case m.inspector.IsOpen():
		helpView = m.help.ShortHelpView(m.keys.inspectorHelp())
	default:
		helpView = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return strings.Join([]string{status, strings.Join(notes, "  "), helpView}, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}

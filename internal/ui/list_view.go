package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	liptable "github.com/charmbracelet/lipgloss/table"
)

func (m Model) renderListScreen() string {
	containerWidth := max(40, m.width-2)

	topRow := m.renderListTopRow(containerWidth)
	filterBar := m.renderListFilterBar(containerWidth)
	footer := m.renderListFooter(containerWidth)

	mainHeight := m.height - lipgloss.Height(topRow) - lipgloss.Height(filterBar) - lipgloss.Height(footer)
	if mainHeight < 8 {
		mainHeight = 8
	}

	detailWidth := 0
	gap := 1
	if m.showDetails {
		detailWidth = max(36, containerWidth/4)
		if detailWidth > containerWidth-28 {
			detailWidth = containerWidth - 28
		}
	}
	mainWidth := containerWidth
	if detailWidth > 0 {
		mainWidth = containerWidth - detailWidth - gap
	}
	if mainWidth < 24 {
		mainWidth = containerWidth
		detailWidth = 0
	}

	center := m.renderListView(mainWidth, mainHeight)
	if detailWidth > 0 {
		right := m.renderDetailView(detailWidth, mainHeight)
		center = lipgloss.JoinHorizontal(lipgloss.Top, center, strings.Repeat(" ", gap), right)
	}

	page := lipgloss.JoinVertical(lipgloss.Left, topRow, filterBar, center, footer)
	return lipgloss.NewStyle().Padding(0, 1).Render(page)
}

func (m Model) renderListTopRow(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("Task Board")
	clock := lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Render(m.now().Format("Mon Jan 2 15:04"))
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(max(1, width-22)).Render(title),
		lipgloss.NewStyle().Width(20).Align(lipgloss.Right).Render(clock),
	))
}

func (m Model) renderListFilterBar(width int) string {
	content := fmt.Sprintf("View: List | Tasks: %d/%d", len(m.listTasks()), m.board.TaskCount())
	if m.searchTerm != "" {
		content = fmt.Sprintf("%s | Search: %s", content, m.searchTerm)
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Foreground(lipgloss.Color("253")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250")).
		Render(content)
}

func (m Model) renderListView(width, height int) string {
	tasks := m.listTasks()
	if len(tasks) == 0 {
		message := "No tasks yet.\nPress n to create one."
		if m.searchTerm != "" {
			message = "No task matches the search.\nPress x to clear it."
		}
		empty := lipgloss.NewStyle().
			Width(max(1, width-4)).
			Height(max(1, height-4)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("245")).
			Render(message)
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Render(empty)
	}

	innerWidth := max(12, width-4)
	visibleRows := max(2, height-4) // header row included
	visibleTaskRows := max(1, visibleRows-1)

	offset := 0
	if m.selected >= visibleTaskRows {
		offset = m.selected - visibleTaskRows + 1
	}
	offset = min(offset, max(0, len(tasks)-visibleTaskRows))

	// Fixed widths include the one-cell padding on each side.
	const (
		statusColWidth   = 14
		dueColWidth      = 12
		priorityColWidth = 10
		assigneeColWidth = 14
	)
	fixed := statusColWidth + dueColWidth + priorityColWidth + assigneeColWidth
	taskColWidth := max(16, innerWidth-fixed-8)
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		due, _ := m.dueDisplay(task)
		assignee := task.Assignee
		if assignee == "" {
			assignee = "-"
		}
		rows = append(rows, []string{
			truncate(task.Title, taskColWidth),
			truncate(m.columnTitle(task.Status), statusColWidth-2),
			truncate(due, dueColWidth-2),
			task.Priority.String(),
			truncate(assignee, assigneeColWidth-2),
		})
	}

	selectedTableRow := m.selected - offset
	t := liptable.New().
		Headers("Task", "Status", "Due", "Priority", "Assignee").
		Rows(rows...).
		Border(lipgloss.HiddenBorder()).
		Width(innerWidth).
		Offset(offset).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252"))
			if row == liptable.HeaderRow {
				style = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("245"))
			} else if row == selectedTableRow {
				style = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
			}
			switch col {
			case 0:
				return style.MaxWidth(taskColWidth + 2)
			case 1:
				return style.Width(statusColWidth)
			case 2:
				return style.Width(dueColWidth)
			case 3:
				return style.Width(priorityColWidth)
			case 4:
				return style.Width(assigneeColWidth)
			default:
				return style
			}
		})

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250")).
		Render(t.String())
}

func (m Model) renderListFooter(width int) string {
	shortcuts := "n: New | e: Edit | D: Delete | H L: Move | d: Details | /: Search | Enter: Open | tab: Kanban"
	helpLine := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Foreground(lipgloss.Color("248")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250")).
		Render(shortcuts)

	lines := []string{}
	if strings.TrimSpace(m.statusLine) != "" {
		lines = append(lines, lipgloss.NewStyle().
			Width(width).
			Padding(0, 1).
			Foreground(lipgloss.Color("222")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Render(m.statusLine))
	}
	lines = append(lines, helpLine)

	if inputLine := m.renderInlineInput(width); inputLine != "" {
		lines = append(lines, inputLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderInlineInput(width int) string {
	var inner string
	switch m.inputMode {
	case inputSearch, inputTaskForm:
		inner = m.textInput.View()
	case inputEditDescription:
		inner = m.textArea.View()
	default:
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Foreground(lipgloss.Color("221")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250")).
		Render(inner)
}

// truncate shortens input to maxLen runes, ending with "..." when cut.
func truncate(input string, maxLen int) string {
	runes := []rune(input)
	if maxLen <= 0 || len(runes) <= maxLen {
		return input
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

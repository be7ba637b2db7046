package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tiagokriok/taskboard/internal/domain"
)

var ghostStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("97")).
	Italic(true)

func (m Model) renderKanbanView(height int) string {
	if len(m.board.Columns) == 0 {
		return "No columns"
	}

	columnWidth := max(24, (m.width-4)/max(1, len(m.board.Columns)))
	if m.showDetails {
		columnWidth = max(20, (m.width*2/3-4)/max(1, len(m.board.Columns)))
	}

	panels := make([]string, 0, len(m.board.Columns))
	for ci, col := range m.board.Columns {
		rows := []string{m.renderColumnHeader(ci, col, columnWidth)}

		colTasks := m.view[col.ID]
		ghostSlot := -1
		var ghost domain.Task
		if m.drag != nil {
			colTasks = visibleWithout(colTasks, m.drag.taskID)
			if ci == m.drag.column {
				ghostSlot = m.drag.slot
				ghost, _ = m.board.Task(m.drag.taskID)
			}
		}

		if len(colTasks) == 0 && ghostSlot < 0 {
			rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1).Render("(empty)"))
		}
		for ri := 0; ri <= len(colTasks); ri++ {
			if ri == ghostSlot {
				rows = append(rows, ghostStyle.Render("» "+truncate(ghost.Title, columnWidth-8)))
			}
			if ri == len(colTasks) {
				break
			}
			task := colTasks[ri]
			style := lipgloss.NewStyle().Padding(0, 1)
			if m.drag == nil && ci == m.activeColumn && ri == m.kanbanRow {
				style = style.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
			}
			rows = append(rows, style.Render(m.cardLine(task, columnWidth-4)))
		}

		borderColor := lipgloss.Color("240")
		if ci == m.activeColumn {
			borderColor = colorFromHexOrDefault(col.Color, "240")
		}
		panel := lipgloss.NewStyle().
			Width(columnWidth).
			Height(height).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(borderColor).
			Render(strings.Join(rows, "\n"))
		panels = append(panels, panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// renderColumnHeader shows the title with "count" or "count / max"; the
// counter turns red once the column reaches its limit.
func (m Model) renderColumnHeader(ci int, col domain.Column, width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorFromHexOrDefault(col.Color, "221"))
	if ci == m.activeColumn {
		titleStyle = titleStyle.Underline(true)
	}

	count := len(col.TaskIDs)
	counter := fmt.Sprintf("%d", count)
	if col.MaxTasks != nil {
		counter = fmt.Sprintf("%d / %d", count, *col.MaxTasks)
	}
	counterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	if col.AtLimit(count) {
		counterStyle = counterStyle.Foreground(lipgloss.Color("203")).Bold(true)
	}

	title := truncate(col.Title, max(4, width-len(counter)-5))
	return lipgloss.NewStyle().Padding(0, 1).Width(width - 2).Render(
		titleStyle.Render(title) + " " + counterStyle.Render(counter),
	)
}

func (m Model) cardLine(task domain.Task, width int) string {
	due := ""
	var dueColor lipgloss.Color
	if task.DueDate != nil {
		due, dueColor = m.dueDisplay(task)
		width -= len(due) + 1
	}
	marker := priorityMarker(task.Priority)
	if marker != "" {
		width -= len([]rune(marker)) + 1
	}

	line := truncate(task.Title, max(4, width))
	if marker != "" {
		line = lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Render(marker) + " " + line
	}
	if due != "" {
		line += " " + lipgloss.NewStyle().Foreground(dueColor).Render(due)
	}
	return line
}

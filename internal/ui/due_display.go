package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tiagokriok/taskboard/internal/domain"
)

var (
	dueColorToday    = lipgloss.Color("220")
	dueColorOverdue  = lipgloss.Color("203")
	dueColorDefault  = lipgloss.Color("252")
	dueColorNoDueSet = lipgloss.Color("245")
)

// dueDisplay labels the task's due date relative to the model's clock.
func (m Model) dueDisplay(task domain.Task) (string, lipgloss.Color) {
	now := m.now()
	deltaDays, ok := task.DaysUntilDue(now)
	if !ok {
		return "-", dueColorNoDueSet
	}

	switch {
	case task.IsOverdue(now) && deltaDays >= -7:
		return fmt.Sprintf("%dd late", -deltaDays), dueColorOverdue
	case task.IsOverdue(now):
		return m.formatDueDate(*task.DueDate), dueColorOverdue
	case deltaDays == 0:
		return "Today", dueColorToday
	case deltaDays == 1:
		return "Tomorrow", dueColorDefault
	default:
		return m.formatDueDate(*task.DueDate), dueColorDefault
	}
}

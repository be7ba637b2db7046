package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderDetailView(width, height int) string {
	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250"))
	task, ok := m.currentTask()
	if !ok {
		return panelStyle.Render("No task selected")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Render(task.Title)

	priorityValue := lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Bold(true).Render(task.Priority.String())
	statusValue := lipgloss.NewStyle().Foreground(m.colorForColumnID(task.Status)).Bold(true).Render(m.columnTitle(task.Status))
	meta := []string{
		fmt.Sprintf("Status: %s", statusValue),
		fmt.Sprintf("Priority: %s", priorityValue),
	}
	if task.DueDate != nil {
		label, color := m.dueDisplay(task)
		meta = append(meta, fmt.Sprintf("Due: %s", lipgloss.NewStyle().Foreground(color).Render(label)))
	}
	metaLine := lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Render(strings.Join(meta, " | "))

	people := []string{}
	if task.Assignee != "" {
		people = append(people, "@"+task.Assignee)
	}
	if len(task.Tags) > 0 {
		people = append(people, renderTags(task.Tags))
	}
	peopleLine := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(strings.Join(people, "  "))

	descTitle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")).Render("Description")
	desc := renderMarkdownMinimal(task.Description)
	if strings.TrimSpace(desc) == "" {
		desc = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("(empty)")
	}

	created := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Created " + m.formatCreatedAt(task.CreatedAt))

	content := []string{header, metaLine}
	if len(people) > 0 {
		content = append(content, peopleLine)
	}
	content = append(content, "", descTitle, desc, "", created)
	return panelStyle.Render(strings.Join(content, "\n"))
}

func renderTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, "#"+tag)
	}
	return strings.Join(out, " ")
}

func renderMarkdownMinimal(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	lines := strings.Split(normalizeViewerText(md), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "### "):
			out = append(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")).Render(strings.TrimPrefix(trimmed, "### ")))
		case strings.HasPrefix(trimmed, "## "):
			out = append(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")).Render(strings.TrimPrefix(trimmed, "## ")))
		case strings.HasPrefix(trimmed, "# "):
			out = append(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("153")).Render(strings.TrimPrefix(trimmed, "# ")))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			out = append(out, "• "+trimmed[2:])
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

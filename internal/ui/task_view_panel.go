package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/tiagokriok/taskboard/internal/domain"
)

type taskViewerLayout struct {
	contentWidth  int
	contentHeight int
	leftWidth     int
	rightWidth    int
}

func (m Model) renderTaskViewerPanel() string {
	task, ok := m.currentTask()
	if !ok {
		return "No task selected"
	}

	layout := m.taskViewerLayout()
	leftLines := m.renderTaskViewerLeftLines(task, layout.leftWidth, layout.contentHeight, m.viewerScroll)
	rightLines := m.renderTaskViewerRightLines(task, layout.rightWidth, layout.contentHeight)
	leftBlock := lipgloss.NewStyle().
		Width(layout.leftWidth).
		Height(layout.contentHeight).
		MaxWidth(layout.leftWidth).
		MaxHeight(layout.contentHeight).
		Render(strings.Join(leftLines, "\n"))
	rightBlock := lipgloss.NewStyle().
		Width(layout.rightWidth).
		Height(layout.contentHeight).
		MaxWidth(layout.rightWidth).
		MaxHeight(layout.contentHeight).
		Render(strings.Join(rightLines, "\n"))
	sepLine := strings.Repeat("│\n", max(0, layout.contentHeight-1)) + "│"
	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Height(layout.contentHeight).
		Render(sepLine)
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, separator, rightBlock)

	panel := lipgloss.NewStyle().
		Width(layout.contentWidth).
		Height(layout.contentHeight).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.colorForColumnID(task.Status)).
		Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) taskViewerLayout() taskViewerLayout {
	panelWidth := max(80, m.width-6)
	if panelWidth > m.width-2 {
		panelWidth = max(20, m.width-2)
	}
	panelHeight := max(18, m.height-4)
	if panelHeight > m.height-2 {
		panelHeight = max(10, m.height-2)
	}

	// border on both sides plus one column of padding each side
	contentWidth := max(1, panelWidth-4)
	contentHeight := max(1, panelHeight-2)

	rightWidth := max(24, contentWidth/4)
	if rightWidth > contentWidth-24 {
		rightWidth = contentWidth - 24
	}
	rightWidth = max(16, rightWidth)
	leftWidth := contentWidth - rightWidth - 1
	if leftWidth < 20 {
		leftWidth = 20
		rightWidth = max(16, contentWidth-leftWidth-1)
	}

	return taskViewerLayout{
		contentWidth:  contentWidth,
		contentHeight: contentHeight,
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
	}
}

func (m Model) taskViewerMaxDescScroll() int {
	task, ok := m.currentTask()
	if !ok {
		return 0
	}
	layout := m.taskViewerLayout()
	descLines := renderViewerMarkdownLines(task.Description, layout.leftWidth)
	viewport := max(1, layout.contentHeight-3) // title, meta, hint
	return max(0, len(descLines)-viewport)
}

func (m Model) renderTaskViewerLeftLines(task domain.Task, width, height, scroll int) []string {
	titleStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("231")).Bold(true)
	metaStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("246"))
	descStyle := lipgloss.NewStyle().Width(width)
	hintStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("244"))

	dueText, dueColor := m.dueDisplay(task)
	dueValue := lipgloss.NewStyle().Foreground(dueColor).Bold(true).Render(dueText)
	priorityValue := lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Bold(true).Render(task.Priority.String())
	statusValue := lipgloss.NewStyle().Foreground(m.colorForColumnID(task.Status)).Bold(true).Render(m.columnTitle(task.Status))

	lines := []string{
		titleStyle.Render(truncate(task.Title, max(1, width))),
		metaStyle.Render(fmt.Sprintf("%s | %s | %s", dueValue, priorityValue, statusValue)),
		hintStyle.Render("j/k or ↑/↓ scroll description | Enter/Esc close"),
	}

	descLines := renderViewerMarkdownLines(task.Description, width)
	viewport := max(1, height-len(lines))
	scroll = max(0, min(scroll, max(0, len(descLines)-viewport)))
	end := min(len(descLines), scroll+viewport)
	for i := scroll; i < end; i++ {
		lines = append(lines, descStyle.Render(descLines[i]))
	}
	return lines
}

func (m Model) renderTaskViewerRightLines(task domain.Task, width, height int) []string {
	headerStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("231")).Bold(true).Align(lipgloss.Center)
	labelStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("245"))
	valueStyle := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("252"))
	blank := lipgloss.NewStyle().Width(width).Render("")

	assignee := task.Assignee
	if assignee == "" {
		assignee = "(unassigned)"
	}
	tags := "(none)"
	if len(task.Tags) > 0 {
		tags = renderTags(task.Tags)
	}

	lines := []string{headerStyle.Render("Properties"), blank}
	fields := []struct{ label, value string }{
		{"Assignee", assignee},
		{"Tags", tags},
		{"Created", m.formatCreatedAt(task.CreatedAt)},
		{"ID", task.ID},
	}
	for _, f := range fields {
		lines = append(lines, labelStyle.Render(f.label))
		for _, v := range wrapViewerText(f.value, width-2) {
			lines = append(lines, valueStyle.Render("  "+v))
		}
		lines = append(lines, blank)
	}
	return trimViewerLines(lines, width, height)
}

func trimViewerLines(lines []string, width, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	style := lipgloss.NewStyle().Width(width)
	for len(lines) < height {
		lines = append(lines, style.Render(""))
	}
	return lines
}

func wrapViewerText(text string, width int) []string {
	text = normalizeViewerText(text)
	if width < 1 {
		return []string{text}
	}

	rawLines := strings.Split(text, "\n")
	wrapped := make([]string, 0, len(rawLines))
	for _, raw := range rawLines {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			wrapped = append(wrapped, "")
			continue
		}

		remaining := raw
		for len([]rune(remaining)) > width {
			runes := []rune(remaining)
			chunk := runes[:width]
			breakAt := -1
			for i := len(chunk) - 1; i >= 0; i-- {
				if chunk[i] == ' ' || chunk[i] == '\t' {
					breakAt = i
					break
				}
			}

			if breakAt <= 0 {
				wrapped = append(wrapped, string(chunk))
				remaining = strings.TrimLeft(string(runes[width:]), " \t")
				continue
			}

			wrapped = append(wrapped, strings.TrimSpace(string(chunk[:breakAt])))
			remaining = strings.TrimLeft(string(runes[breakAt:]), " \t")
		}
		if remaining != "" {
			wrapped = append(wrapped, remaining)
		}
	}
	return wrapped
}

func renderViewerMarkdownLines(md string, width int) []string {
	md = strings.TrimSpace(normalizeViewerText(md))
	if md == "" {
		return []string{"(empty)"}
	}

	rendered, err := renderMarkdownWithGlamour(md, width)
	if err != nil {
		return wrapViewerText(md, width)
	}
	rendered = strings.TrimRight(normalizeViewerText(rendered), "\n")
	if rendered == "" {
		return []string{"(empty)"}
	}
	return strings.Split(rendered, "\n")
}

func renderMarkdownWithGlamour(md string, width int) (string, error) {
	width = max(20, width)
	style := styles.DarkStyleConfig
	style.H1.Prefix = " "
	style.H2.Prefix = "  "
	style.H3.Prefix = "   "
	style.H1.BackgroundColor = nil
	style.H1.Color = stringPtr("51")
	style.H1.Bold = boolPtr(true)
	style.H2.Color = stringPtr("45")
	style.H2.Bold = boolPtr(true)
	style.H3.Color = stringPtr("44")

	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStyles(style),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func boolPtr(v bool) *bool {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func normalizeViewerText(text string) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

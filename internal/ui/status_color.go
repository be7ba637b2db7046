package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tiagokriok/taskboard/internal/domain"
)

var uiHexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (m Model) columnTitle(columnID string) string {
	if col, _, ok := m.board.Column(columnID); ok {
		return col.Title
	}
	if strings.TrimSpace(columnID) == "" {
		return "-"
	}
	return columnID
}

func (m Model) colorForColumnID(columnID string) lipgloss.Color {
	if col, _, ok := m.board.Column(columnID); ok {
		return colorFromHexOrDefault(col.Color, "252")
	}
	return lipgloss.Color("252")
}

func colorFromHexOrDefault(hex, fallback string) lipgloss.Color {
	normalized := strings.TrimSpace(hex)
	if uiHexColorPattern.MatchString(normalized) {
		return lipgloss.Color(normalized)
	}
	return lipgloss.Color(fallback)
}

// Indexed by Priority.Rank.
var (
	priorityColors  = [...]lipgloss.Color{"245", "114", "220", "208", "196"}
	priorityMarkers = [...]string{"", "·", "•", "!", "!!"}
)

func priorityColor(p domain.Priority) lipgloss.Color {
	return priorityColors[p.Rank()]
}

func priorityMarker(p domain.Priority) string {
	return priorityMarkers[p.Rank()]
}

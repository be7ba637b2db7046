package application

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tiagokriok/taskboard/internal/domain"
)

// Project derives the visible tasks of every column. A task is visible when its
// title contains searchTerm, compared case-insensitively; an empty term shows
// everything. Column order is kept and ids without a task entry are skipped.
// Every column id is present in the result.
func Project(columns []domain.Column, tasks map[string]domain.Task, searchTerm string) map[string][]domain.Task {
	needle := foldTerm(searchTerm)
	out := make(map[string][]domain.Task, len(columns))
	for _, col := range columns {
		visible := make([]domain.Task, 0, len(col.TaskIDs))
		for _, id := range col.TaskIDs {
			task, ok := tasks[id]
			if !ok {
				continue
			}
			if needle != "" && !strings.Contains(foldTerm(task.Title), needle) {
				continue
			}
			visible = append(visible, task)
		}
		out[col.ID] = visible
	}
	return out
}

func ProjectBoard(b domain.Board, searchTerm string) map[string][]domain.Task {
	return Project(b.Columns, b.Tasks, searchTerm)
}

// Visible reports whether a single task passes the title filter.
func Visible(task domain.Task, searchTerm string) bool {
	needle := foldTerm(searchTerm)
	return needle == "" || strings.Contains(foldTerm(task.Title), needle)
}

func foldTerm(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

package application

import (
	"time"

	"github.com/tiagokriok/taskboard/internal/domain"
)

type defaultColumnSpec struct {
	ID       string
	Title    string
	Color    string
	MaxTasks *int
}

func defaultColumnSpecs() []defaultColumnSpec {
	return []defaultColumnSpec{
		{ID: "todo", Title: "To Do", Color: "#3B82F6", MaxTasks: intPtr(10)},
		{ID: "in-progress", Title: "In Progress", Color: "#F59E0B", MaxTasks: intPtr(5)},
		{ID: "review", Title: "Review", Color: "#6366F1", MaxTasks: intPtr(3)},
		{ID: "done", Title: "Done", Color: "#10B981"},
	}
}

type defaultTaskSpec struct {
	ID          string
	Column      string
	Title       string
	Description string
	Priority    domain.Priority
	Assignee    string
	Tags        []string
	CreatedAt   string
	DueDate     string
}

func defaultTaskSpecs() []defaultTaskSpec {
	return []defaultTaskSpec{
		{
			ID:          "task-1",
			Column:      "todo",
			Title:       "Implement drag and drop functionality",
			Description: "Grab a card with **space**, steer it with `h j k l`, drop it with **space** again.",
			Priority:    domain.PriorityHigh,
			Assignee:    "Alex Smith",
			Tags:        []string{"frontend", "feature"},
			CreatedAt:   "2025-10-20T10:00:00Z",
			DueDate:     "2025-11-05T10:00:00Z",
		},
		{
			ID:        "task-2",
			Column:    "todo",
			Title:     "Design task modal component",
			Priority:  domain.PriorityMedium,
			Assignee:  "Jamie Lee",
			Tags:      []string{"design", "ui"},
			CreatedAt: "2025-10-21T10:00:00Z",
		},
		{
			ID:        "task-3",
			Column:    "in-progress",
			Title:     "Setup TypeScript and Tailwind config",
			Priority:  domain.PriorityUrgent,
			Assignee:  "Alex Smith",
			Tags:      []string{"setup"},
			CreatedAt: "2025-10-19T10:00:00Z",
		},
		{
			ID:          "task-4",
			Column:      "done",
			Title:       "Create project structure",
			Description: "Setup folders for components, hooks, and utils.",
			Priority:    domain.PriorityLow,
			Assignee:    "Jamie Lee",
			Tags:        []string{"setup"},
			CreatedAt:   "2025-10-18T10:00:00Z",
		},
		{
			ID:        "task-5",
			Column:    "done",
			Title:     "Install dependencies (React, Storybook)",
			Priority:  domain.PriorityLow,
			Assignee:  "Chris Wong",
			Tags:      []string{"setup"},
			CreatedAt: "2025-10-18T09:00:00Z",
		},
	}
}

// DefaultBoard builds the sample board shown when no board file is configured.
func DefaultBoard() domain.Board {
	specs := defaultColumnSpecs()
	columns := make([]domain.Column, 0, len(specs))
	for _, s := range specs {
		columns = append(columns, domain.Column{
			ID:       s.ID,
			Title:    s.Title,
			Color:    s.Color,
			TaskIDs:  []string{},
			MaxTasks: s.MaxTasks,
		})
	}

	tasks := make(map[string]domain.Task)
	for _, s := range defaultTaskSpecs() {
		task := domain.Task{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Status:      s.Column,
			Priority:    s.Priority,
			Assignee:    s.Assignee,
			Tags:        s.Tags,
			CreatedAt:   mustParseTime(s.CreatedAt),
		}
		if s.DueDate != "" {
			due := mustParseTime(s.DueDate)
			task.DueDate = &due
		}
		tasks[task.ID] = task
		for i := range columns {
			if columns[i].ID == s.Column {
				columns[i].TaskIDs = append(columns[i].TaskIDs, task.ID)
			}
		}
	}
	return domain.NewBoard(columns, tasks)
}

func mustParseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int {
	return &v
}

package domain

import "fmt"

// Board is the canonical state: ordered columns plus the task mapping.
// Values are treated as immutable snapshots; operations return new boards.
type Board struct {
	Columns []Column
	Tasks   map[string]Task
}

func NewBoard(columns []Column, tasks map[string]Task) Board {
	if tasks == nil {
		tasks = map[string]Task{}
	}
	return Board{Columns: columns, Tasks: tasks}
}

// Clone returns a deep copy sharing no slices or maps with b.
func (b Board) Clone() Board {
	out := Board{
		Columns: make([]Column, len(b.Columns)),
		Tasks:   make(map[string]Task, len(b.Tasks)),
	}
	for i, c := range b.Columns {
		out.Columns[i] = c.Clone()
	}
	for id, t := range b.Tasks {
		out.Tasks[id] = t.Clone()
	}
	return out
}

// Column looks up a column by id and returns its position in Columns.
func (b Board) Column(id string) (Column, int, bool) {
	for i, c := range b.Columns {
		if c.ID == id {
			return c, i, true
		}
	}
	return Column{}, -1, false
}

func (b Board) Task(id string) (Task, bool) {
	t, ok := b.Tasks[id]
	return t, ok
}

// ColumnOf returns the id of the first column listing taskID.
func (b Board) ColumnOf(taskID string) (string, bool) {
	for _, c := range b.Columns {
		if c.Contains(taskID) {
			return c.ID, true
		}
	}
	return "", false
}

func (b Board) TaskCount() int {
	return len(b.Tasks)
}

// Validate checks the board invariants: referenced ids exist, each task sits in
// exactly the column named by its status, and ids are unique.
func (b Board) Validate() error {
	columnIDs := make(map[string]struct{}, len(b.Columns))
	owner := make(map[string]string, len(b.Tasks))
	for i, c := range b.Columns {
		if c.ID == "" {
			return fmt.Errorf("%w: column %d has an empty id", ErrInvalidBoard, i+1)
		}
		if _, dup := columnIDs[c.ID]; dup {
			return fmt.Errorf("%w: duplicate column id %q", ErrInvalidBoard, c.ID)
		}
		columnIDs[c.ID] = struct{}{}
		if c.MaxTasks != nil && *c.MaxTasks < 0 {
			return fmt.Errorf("%w: column %q has a negative task limit", ErrInvalidBoard, c.ID)
		}

		for _, taskID := range c.TaskIDs {
			if prev, seen := owner[taskID]; seen {
				if prev == c.ID {
					return fmt.Errorf("%w: task %q listed twice in column %q", ErrInvalidBoard, taskID, c.ID)
				}
				return fmt.Errorf("%w: task %q listed in columns %q and %q", ErrInvalidBoard, taskID, prev, c.ID)
			}
			owner[taskID] = c.ID

			task, ok := b.Tasks[taskID]
			if !ok {
				return fmt.Errorf("%w: column %q references unknown task %q", ErrInvalidBoard, c.ID, taskID)
			}
			if task.Status != c.ID {
				return fmt.Errorf("%w: task %q has status %q but sits in column %q", ErrInvalidBoard, taskID, task.Status, c.ID)
			}
		}
	}

	for key, task := range b.Tasks {
		if task.ID != key {
			return fmt.Errorf("%w: task keyed %q carries id %q", ErrInvalidBoard, key, task.ID)
		}
		if _, ok := owner[key]; !ok {
			return fmt.Errorf("%w: task %q is not listed in any column", ErrInvalidBoard, key)
		}
	}
	return nil
}

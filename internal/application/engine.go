package application

import (
	"fmt"

	"github.com/tiagokriok/taskboard/internal/domain"
	"github.com/tiagokriok/taskboard/internal/infrastructure/providers"
)

const maxIDAttempts = 16

// Engine implements the four board mutations. Every method treats its input
// board as read-only and returns a new board; slices and maps that change are
// copied, untouched columns and tasks are shared with the input.
type Engine struct {
	clock domain.Clock
	ids   domain.IDGenerator
}

type EngineOption func(*Engine)

func WithClock(clock domain.Clock) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func WithIDGenerator(ids domain.IDGenerator) EngineOption {
	return func(e *Engine) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// NewEngine falls back to providers.SystemClock and providers.UUIDGenerator
// when no clock or id generator option is given.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{clock: providers.SystemClock{}, ids: providers.NewUUIDGenerator()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create adds a task to the front of columnID. The returned bool is false, and
// the board unchanged, when the column does not exist.
func (e *Engine) Create(b domain.Board, columnID string, fields domain.TaskFields) (domain.Board, domain.Task, bool) {
	col, idx, ok := b.Column(columnID)
	if !ok {
		return b, domain.Task{}, false
	}

	task := domain.Task{
		ID:          e.freshID(b),
		Title:       fields.Title,
		Description: fields.Description,
		Status:      columnID,
		Priority:    fields.Priority,
		Assignee:    fields.Assignee,
		Tags:        copyStrings(fields.Tags),
		CreatedAt:   e.clock.Now(),
	}
	if fields.DueDate != nil {
		d := *fields.DueDate
		task.DueDate = &d
	}

	taskIDs := make([]string, 0, len(col.TaskIDs)+1)
	taskIDs = append(taskIDs, task.ID)
	taskIDs = append(taskIDs, col.TaskIDs...)
	col.TaskIDs = taskIDs

	tasks := copyTasks(b.Tasks, 1)
	tasks[task.ID] = task
	return domain.Board{Columns: replaceColumn(b.Columns, idx, col), Tasks: tasks}, task, true
}

// Update merges patch over an existing task. Unknown ids leave the board as is.
// Column membership and status are never touched.
func (e *Engine) Update(b domain.Board, taskID string, patch domain.TaskPatch) domain.Board {
	task, ok := b.Tasks[taskID]
	if !ok || patch.IsEmpty() {
		return b
	}
	tasks := copyTasks(b.Tasks, 0)
	tasks[taskID] = patch.Apply(task)
	return domain.Board{Columns: b.Columns, Tasks: tasks}
}

// Delete removes a task and scrubs its id from every column.
func (e *Engine) Delete(b domain.Board, taskID string) domain.Board {
	_, inTasks := b.Tasks[taskID]
	_, inColumn := b.ColumnOf(taskID)
	if !inTasks && !inColumn {
		return b
	}

	columns := b.Columns
	if inColumn {
		columns = make([]domain.Column, len(b.Columns))
		for i, c := range b.Columns {
			if c.Contains(taskID) {
				c.TaskIDs = without(c.TaskIDs, taskID)
			}
			columns[i] = c
		}
	}

	tasks := b.Tasks
	if inTasks {
		tasks = make(map[string]domain.Task, len(b.Tasks)-1)
		for id, t := range b.Tasks {
			if id != taskID {
				tasks[id] = t
			}
		}
	}
	return domain.Board{Columns: columns, Tasks: tasks}
}

// Move relocates taskID from one column to another (or within one column).
// newIndex is a position in the destination list after the task has been taken
// out of the source; it is clamped to the list bounds. Unknown columns, or a
// task that is not listed in fromColumnID, leave the board unchanged.
func (e *Engine) Move(b domain.Board, taskID, fromColumnID, toColumnID string, newIndex int) domain.Board {
	from, fromIdx, ok := b.Column(fromColumnID)
	if !ok {
		return b
	}
	to, toIdx, ok := b.Column(toColumnID)
	if !ok {
		return b
	}
	pos := from.IndexOf(taskID)
	if pos < 0 {
		return b
	}

	if fromColumnID == toColumnID {
		remaining := without(from.TaskIDs, taskID)
		target := clamp(newIndex, 0, len(remaining))
		if target == pos {
			return b
		}
		from.TaskIDs = insertAt(remaining, target, taskID)
		return domain.Board{Columns: replaceColumn(b.Columns, fromIdx, from), Tasks: b.Tasks}
	}

	from.TaskIDs = without(from.TaskIDs, taskID)
	to.TaskIDs = insertAt(to.TaskIDs, clamp(newIndex, 0, len(to.TaskIDs)), taskID)

	columns := replaceColumn(b.Columns, fromIdx, from)
	columns[toIdx] = to

	tasks := b.Tasks
	if task, ok := b.Tasks[taskID]; ok {
		tasks = copyTasks(b.Tasks, 0)
		task.Status = toColumnID
		tasks[taskID] = task
	}
	return domain.Board{Columns: columns, Tasks: tasks}
}

func (e *Engine) freshID(b domain.Board) string {
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = e.ids.NewID()
		if !idTaken(b, id) {
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !idTaken(b, candidate) {
			return candidate
		}
	}
}

func idTaken(b domain.Board, id string) bool {
	if id == "" {
		return true
	}
	if _, ok := b.Tasks[id]; ok {
		return true
	}
	_, listed := b.ColumnOf(id)
	return listed
}

func replaceColumn(columns []domain.Column, idx int, col domain.Column) []domain.Column {
	out := make([]domain.Column, len(columns))
	copy(out, columns)
	out[idx] = col
	return out
}

func copyTasks(in map[string]domain.Task, extra int) map[string]domain.Task {
	out := make(map[string]domain.Task, len(in)+extra)
	for id, t := range in {
		out[id] = t
	}
	return out
}

func without(ids []string, taskID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != taskID {
			out = append(out, id)
		}
	}
	return out
}

func insertAt(ids []string, index int, taskID string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, taskID)
	out = append(out, ids[index:]...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

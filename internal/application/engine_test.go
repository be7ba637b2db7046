package application

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagokriok/taskboard/internal/domain"
	"github.com/tiagokriok/taskboard/internal/infrastructure/providers"
)

var testEpoch = time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(
		WithClock(providers.NewStepClock(testEpoch, time.Minute)),
		WithIDGenerator(providers.NewSequentialIDs("new", 1)),
	)
}

// fixedIDs replays ids in order and then repeats the last one.
type fixedIDs struct {
	ids []string
	n   int
}

func (f *fixedIDs) NewID() string {
	id := f.ids[min(f.n, len(f.ids)-1)]
	f.n++
	return id
}

func twoColumnBoard() domain.Board {
	return domain.NewBoard(
		[]domain.Column{
			{ID: "todo", Title: "To Do", TaskIDs: []string{"t1", "t2"}},
			{ID: "done", Title: "Done", TaskIDs: []string{}},
		},
		map[string]domain.Task{
			"t1": {ID: "t1", Title: "Fix bug", Status: "todo", Priority: domain.PriorityLow, Tags: []string{"bug"}, CreatedAt: testEpoch},
			"t2": {ID: "t2", Title: "Design UI", Status: "todo", CreatedAt: testEpoch},
		},
	)
}

func columnIDs(t *testing.T, b domain.Board, columnID string) []string {
	t.Helper()
	col, _, ok := b.Column(columnID)
	require.True(t, ok, "column %s", columnID)
	return col.TaskIDs
}

func TestEngineCreate(t *testing.T) {
	engine := newTestEngine()
	before := twoColumnBoard()
	due := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	after, task, ok := engine.Create(before, "todo", domain.TaskFields{
		Title:    "X",
		Priority: domain.PriorityHigh,
		Tags:     []string{"one"},
		DueDate:  &due,
	})
	require.True(t, ok)

	assert.Equal(t, "new-1", task.ID)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, testEpoch, task.CreatedAt)
	assert.Equal(t, []string{"new-1", "t1", "t2"}, columnIDs(t, after, "todo"))
	assert.Equal(t, task, after.Tasks["new-1"])
	require.NoError(t, after.Validate())

	// the input snapshot is untouched
	assert.Equal(t, []string{"t1", "t2"}, columnIDs(t, before, "todo"))
	assert.NotContains(t, before.Tasks, "new-1")

	// the stored due date does not alias the caller's value
	due = due.AddDate(0, 1, 0)
	assert.Equal(t, time.November, after.Tasks["new-1"].DueDate.Month())
}

func TestEngineDefaultsToSystemProviders(t *testing.T) {
	before := time.Now().UTC()
	_, task, ok := NewEngine().Create(twoColumnBoard(), "done", domain.TaskFields{Title: "Ship"})
	require.True(t, ok)

	_, err := uuid.Parse(task.ID)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
	assert.False(t, task.CreatedAt.Before(before))
}

func TestEngineCreateUnknownColumn(t *testing.T) {
	before := twoColumnBoard()
	after, _, ok := newTestEngine().Create(before, "archive", domain.TaskFields{Title: "X"})
	assert.False(t, ok)
	assert.Equal(t, before, after)
}

func TestEngineCreateRegeneratesTakenIDs(t *testing.T) {
	engine := NewEngine(WithIDGenerator(&fixedIDs{ids: []string{"t1", "", "fresh"}}))
	after, task, ok := engine.Create(twoColumnBoard(), "done", domain.TaskFields{Title: "X"})
	require.True(t, ok)
	assert.Equal(t, "fresh", task.ID)
	require.NoError(t, after.Validate())
}

func TestEngineCreateSuffixesWhenGeneratorIsStuck(t *testing.T) {
	engine := NewEngine(WithIDGenerator(&fixedIDs{ids: []string{"t1"}}))
	after, task, ok := engine.Create(twoColumnBoard(), "done", domain.TaskFields{Title: "X"})
	require.True(t, ok)
	assert.Equal(t, "t1-2", task.ID)
	require.NoError(t, after.Validate())
}

func TestEngineCreateSharesUntouchedColumns(t *testing.T) {
	before := twoColumnBoard()
	after, _, ok := newTestEngine().Create(before, "done", domain.TaskFields{Title: "X"})
	require.True(t, ok)

	// todo was not touched, so its id slice is shared
	assert.Same(t, &before.Columns[0].TaskIDs[0], &after.Columns[0].TaskIDs[0])
}

func TestEngineUpdateMergesFields(t *testing.T) {
	before := twoColumnBoard()
	urgent := domain.PriorityUrgent

	after := newTestEngine().Update(before, "t1", domain.TaskPatch{Priority: &urgent})

	got := after.Tasks["t1"]
	want := before.Tasks["t1"]
	want.Priority = domain.PriorityUrgent
	assert.Equal(t, want, got)
	assert.Equal(t, domain.PriorityLow, before.Tasks["t1"].Priority)
	assert.Equal(t, before.Columns, after.Columns)
}

func TestEngineUpdateNoOps(t *testing.T) {
	before := twoColumnBoard()
	title := "Anything"

	assert.Equal(t, before, newTestEngine().Update(before, "ghost", domain.TaskPatch{Title: &title}))
	assert.Equal(t, before, newTestEngine().Update(before, "t1", domain.TaskPatch{}))
}

func TestEngineDelete(t *testing.T) {
	before := twoColumnBoard()
	after := newTestEngine().Delete(before, "t1")

	assert.Equal(t, []string{"t2"}, columnIDs(t, after, "todo"))
	assert.NotContains(t, after.Tasks, "t1")
	require.NoError(t, after.Validate())

	assert.Contains(t, before.Tasks, "t1")
	assert.Equal(t, []string{"t1", "t2"}, columnIDs(t, before, "todo"))
}

func TestEngineDeleteUnknownIsIdempotent(t *testing.T) {
	before := twoColumnBoard()
	after := newTestEngine().Delete(before, "nope")
	assert.Equal(t, before, after)

	again := newTestEngine().Delete(newTestEngine().Delete(before, "t2"), "t2")
	assert.Equal(t, newTestEngine().Delete(before, "t2"), again)
}

func TestEngineMoveCrossColumn(t *testing.T) {
	before := twoColumnBoard()
	after := newTestEngine().Move(before, "t1", "todo", "done", 0)

	assert.Equal(t, []string{"t2"}, columnIDs(t, after, "todo"))
	assert.Equal(t, []string{"t1"}, columnIDs(t, after, "done"))
	assert.Equal(t, "done", after.Tasks["t1"].Status)
	require.NoError(t, after.Validate())

	assert.Equal(t, "todo", before.Tasks["t1"].Status)
	assert.Empty(t, columnIDs(t, before, "done"))
}

func TestEngineMoveClampsIndex(t *testing.T) {
	board := twoColumnBoard()
	engine := newTestEngine()
	board = engine.Move(board, "t2", "todo", "done", 0)
	board, _, _ = engine.Create(board, "done", domain.TaskFields{Title: "Second"})
	require.Len(t, columnIDs(t, board, "done"), 2)

	after := engine.Move(board, "t1", "todo", "done", 999)
	assert.Equal(t, "t1", columnIDs(t, after, "done")[2])

	after = engine.Move(board, "t1", "todo", "done", -5)
	assert.Equal(t, "t1", columnIDs(t, after, "done")[0])
}

func TestEngineMoveSameColumn(t *testing.T) {
	board := domain.NewBoard(
		[]domain.Column{{ID: "todo", TaskIDs: []string{"a", "b", "c", "d"}}},
		map[string]domain.Task{
			"a": {ID: "a", Title: "a", Status: "todo"},
			"b": {ID: "b", Title: "b", Status: "todo"},
			"c": {ID: "c", Title: "c", Status: "todo"},
			"d": {ID: "d", Title: "d", Status: "todo"},
		},
	)
	engine := newTestEngine()

	tests := []struct {
		name  string
		task  string
		index int
		want  []string
	}{
		{name: "down", task: "a", index: 2, want: []string{"b", "c", "a", "d"}},
		{name: "up", task: "d", index: 1, want: []string{"a", "d", "b", "c"}},
		{name: "to end", task: "b", index: 3, want: []string{"a", "c", "d", "b"}},
		{name: "past end", task: "b", index: 42, want: []string{"a", "c", "d", "b"}},
		{name: "to front", task: "c", index: 0, want: []string{"c", "a", "b", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := engine.Move(board, tt.task, "todo", "todo", tt.index)
			assert.Equal(t, tt.want, columnIDs(t, after, "todo"))
			require.NoError(t, after.Validate())
		})
	}

	t.Run("current index is a no-op", func(t *testing.T) {
		for i, id := range []string{"a", "b", "c", "d"} {
			assert.Equal(t, board, engine.Move(board, id, "todo", "todo", i))
		}
	})
}

func TestEngineMoveNoOps(t *testing.T) {
	before := twoColumnBoard()
	engine := newTestEngine()

	assert.Equal(t, before, engine.Move(before, "t1", "nope", "done", 0))
	assert.Equal(t, before, engine.Move(before, "t1", "todo", "nope", 0))
	assert.Equal(t, before, engine.Move(before, "t1", "done", "todo", 0))
	assert.Equal(t, before, engine.Move(before, "ghost", "todo", "done", 0))
}

func TestEngineIgnoresWIPLimits(t *testing.T) {
	board := twoColumnBoard()
	board.Columns[1].MaxTasks = new(int)

	after := newTestEngine().Move(board, "t1", "todo", "done", 0)
	assert.Equal(t, []string{"t1"}, columnIDs(t, after, "done"))

	after, _, ok := newTestEngine().Create(after, "done", domain.TaskFields{Title: "Over"})
	require.True(t, ok)
	assert.Len(t, columnIDs(t, after, "done"), 2)
}

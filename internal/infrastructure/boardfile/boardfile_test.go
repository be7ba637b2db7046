package boardfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagokriok/taskboard/internal/domain"
	"github.com/tiagokriok/taskboard/internal/infrastructure/providers"
)

const sampleYAML = `columns:
  - id: todo
    title: To Do
    color: "#3b82f6"
    max_tasks: 10
    tasks:
      - id: task-1
        title: Implement drag and drop
        priority: High
        assignee: Alex Smith
        tags: [frontend, feature]
        created_at: 2025-10-20T10:00:00Z
        due_date: 2025-11-05T00:00:00Z
      - title: Design task modal
  - id: done
    title: Done
`

var loadTime = time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)

func parseSample(t *testing.T, content string) (domain.Board, error) {
	t.Helper()
	return Parse([]byte(content), providers.NewStepClock(loadTime, 0), providers.NewSequentialIDs("gen", 1))
}

func TestParse(t *testing.T) {
	board, err := parseSample(t, sampleYAML)
	require.NoError(t, err)
	require.NoError(t, board.Validate())

	require.Len(t, board.Columns, 2)
	todo := board.Columns[0]
	assert.Equal(t, "To Do", todo.Title)
	assert.Equal(t, "#3B82F6", todo.Color)
	require.NotNil(t, todo.MaxTasks)
	assert.Equal(t, 10, *todo.MaxTasks)
	assert.Equal(t, []string{"task-1", "gen-1"}, todo.TaskIDs)

	done := board.Columns[1]
	assert.Equal(t, defaultColumnColor, done.Color)
	assert.Nil(t, done.MaxTasks)
	assert.Empty(t, done.TaskIDs)

	first := board.Tasks["task-1"]
	assert.Equal(t, domain.PriorityHigh, first.Priority)
	assert.Equal(t, "todo", first.Status)
	assert.Equal(t, []string{"frontend", "feature"}, first.Tags)
	assert.Equal(t, time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC), first.CreatedAt)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, 5, first.DueDate.Day())

	generated := board.Tasks["gen-1"]
	assert.Equal(t, "Design task modal", generated.Title)
	assert.Equal(t, loadTime, generated.CreatedAt)
	assert.Equal(t, domain.PriorityNone, generated.Priority)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty file", content: "", want: "board file is empty"},
		{name: "no columns", content: "columns: []\n", want: "at least one column"},
		{name: "unknown field", content: "columns:\n  - id: a\n    wip: 3\n", want: "field wip not found"},
		{name: "missing column id", content: "columns:\n  - title: A\n", want: "column 1 id is required"},
		{name: "bad color", content: "columns:\n  - id: a\n    color: blue\n", want: "HEX"},
		{name: "negative limit", content: "columns:\n  - id: a\n    max_tasks: -1\n", want: "must not be negative"},
		{name: "missing title", content: "columns:\n  - id: a\n    tasks:\n      - id: x\n", want: "title is required"},
		{name: "bad priority", content: "columns:\n  - id: a\n    tasks:\n      - title: x\n        priority: p0\n", want: "invalid priority"},
		{name: "duplicate column", content: "columns:\n  - id: a\n  - id: a\n", want: `duplicate column id "a"`},
		{
			name:    "duplicate task",
			content: "columns:\n  - id: a\n    tasks:\n      - {id: x, title: one}\n  - id: b\n    tasks:\n      - {id: x, title: two}\n",
			want:    `duplicate task id "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSample(t, tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	source := NewSource(path, providers.SystemClock{}, providers.NewSequentialIDs("f", 1))
	assert.Equal(t, path, source.Path())

	board, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, board.TaskCount())

	_, err = NewSource(filepath.Join(dir, "missing.yaml"), nil, nil).Load(context.Background())
	assert.ErrorContains(t, err, "read board file")

	_, err = NewSource("  ", nil, nil).Load(context.Background())
	assert.ErrorContains(t, err, "path is required")
}

func TestEncodeRoundTrip(t *testing.T) {
	board, err := parseSample(t, sampleYAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromBoard(board, nil)))

	again, err := parseSample(t, buf.String())
	require.NoError(t, err)
	assert.Equal(t, board, again)
}

func TestFromBoardWithVisibleSubset(t *testing.T) {
	board, err := parseSample(t, sampleYAML)
	require.NoError(t, err)

	visible := map[string][]domain.Task{
		"todo": {board.Tasks["gen-1"]},
		"done": {},
	}
	file := FromBoard(board, visible)

	require.Len(t, file.Columns, 2)
	require.Len(t, file.Columns[0].Tasks, 1)
	assert.Equal(t, "gen-1", file.Columns[0].Tasks[0].ID)
	assert.Empty(t, file.Columns[1].Tasks)
	assert.Equal(t, 10, *file.Columns[0].MaxTasks)
}

func TestParseGeneratedIDsSkipExplicitOnes(t *testing.T) {
	content := `columns:
  - id: todo
    tasks:
      - title: Unnamed
  - id: done
    tasks:
      - id: task-1
        title: Named later
`
	board, err := Parse([]byte(content), providers.NewStepClock(loadTime, 0), providers.NewSequentialIDs("task", 1))
	require.NoError(t, err)
	require.NoError(t, board.Validate())

	assert.Equal(t, []string{"task-2"}, board.Columns[0].TaskIDs)
	assert.Equal(t, []string{"task-1"}, board.Columns[1].TaskIDs)
	assert.Equal(t, "Named later", board.Tasks["task-1"].Title)
	assert.Equal(t, "Unnamed", board.Tasks["task-2"].Title)
}

type constantIDs string

func (c constantIDs) NewID() string { return string(c) }

func TestParseSuffixesWhenGeneratorRepeats(t *testing.T) {
	content := `columns:
  - id: todo
    tasks:
      - title: First
      - title: Second
      - id: same
        title: Explicit
`
	board, err := Parse([]byte(content), providers.NewStepClock(loadTime, 0), constantIDs("same"))
	require.NoError(t, err)
	assert.Equal(t, []string{"same-2", "same-3", "same"}, board.Columns[0].TaskIDs)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(v int) *int { return &v }

func sampleBoard() Board {
	created := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	return NewBoard(
		[]Column{
			{ID: "todo", Title: "To Do", TaskIDs: []string{"a", "b"}, MaxTasks: limit(2)},
			{ID: "done", Title: "Done", TaskIDs: []string{"c"}},
		},
		map[string]Task{
			"a": {ID: "a", Title: "Alpha", Status: "todo", CreatedAt: created, Tags: []string{"x"}},
			"b": {ID: "b", Title: "Beta", Status: "todo", CreatedAt: created},
			"c": {ID: "c", Title: "Gamma", Status: "done", CreatedAt: created},
		},
	)
}

func TestBoardValidate(t *testing.T) {
	require.NoError(t, sampleBoard().Validate())
	require.NoError(t, NewBoard(nil, nil).Validate())

	tests := []struct {
		name   string
		mutate func(b *Board)
		want   string
	}{
		{
			name:   "unknown task reference",
			mutate: func(b *Board) { b.Columns[1].TaskIDs = append(b.Columns[1].TaskIDs, "ghost") },
			want:   `references unknown task "ghost"`,
		},
		{
			name: "status mismatch",
			mutate: func(b *Board) {
				task := b.Tasks["c"]
				task.Status = "todo"
				b.Tasks["c"] = task
			},
			want: `has status "todo" but sits in column "done"`,
		},
		{
			name:   "task in two columns",
			mutate: func(b *Board) { b.Columns[1].TaskIDs = append(b.Columns[1].TaskIDs, "a") },
			want:   `listed in columns "todo" and "done"`,
		},
		{
			name:   "task listed twice",
			mutate: func(b *Board) { b.Columns[0].TaskIDs = append(b.Columns[0].TaskIDs, "a") },
			want:   `listed twice in column "todo"`,
		},
		{
			name:   "orphan task",
			mutate: func(b *Board) { b.Tasks["d"] = Task{ID: "d", Title: "Delta", Status: "done"} },
			want:   `task "d" is not listed in any column`,
		},
		{
			name: "key and id disagree",
			mutate: func(b *Board) {
				task := b.Tasks["b"]
				task.ID = "bb"
				b.Tasks["b"] = task
			},
			want: `task keyed "b" carries id "bb"`,
		},
		{
			name:   "duplicate column",
			mutate: func(b *Board) { b.Columns = append(b.Columns, Column{ID: "done"}) },
			want:   `duplicate column id "done"`,
		},
		{
			name:   "empty column id",
			mutate: func(b *Board) { b.Columns[0].ID = "" },
			want:   "column 1 has an empty id",
		},
		{
			name:   "negative limit",
			mutate: func(b *Board) { b.Columns[1].MaxTasks = limit(-1) },
			want:   "negative task limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBoard()
			tt.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBoard)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	original := sampleBoard()
	clone := original.Clone()

	clone.Columns[0].TaskIDs[0] = "changed"
	*clone.Columns[0].MaxTasks = 99
	task := clone.Tasks["a"]
	task.Tags[0] = "changed"
	delete(clone.Tasks, "b")

	assert.Equal(t, "a", original.Columns[0].TaskIDs[0])
	assert.Equal(t, 2, *original.Columns[0].MaxTasks)
	assert.Equal(t, "x", original.Tasks["a"].Tags[0])
	assert.Contains(t, original.Tasks, "b")
}

func TestBoardLookups(t *testing.T) {
	b := sampleBoard()

	col, idx, ok := b.Column("done")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "Done", col.Title)

	_, idx, ok = b.Column("missing")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	owner, ok := b.ColumnOf("b")
	require.True(t, ok)
	assert.Equal(t, "todo", owner)
	_, ok = b.ColumnOf("zzz")
	assert.False(t, ok)

	assert.Equal(t, 3, b.TaskCount())
}

func TestColumnLimits(t *testing.T) {
	unlimited := Column{ID: "done", TaskIDs: []string{"a", "b", "c"}}
	assert.False(t, unlimited.AtLimit(100))
	assert.False(t, unlimited.OverLimit())

	limited := Column{ID: "review", TaskIDs: []string{"a", "b"}, MaxTasks: limit(2)}
	assert.False(t, limited.AtLimit(1))
	assert.True(t, limited.AtLimit(2))
	assert.False(t, limited.OverLimit())

	limited.TaskIDs = append(limited.TaskIDs, "c")
	assert.True(t, limited.OverLimit())

	zero := Column{ID: "blocked", MaxTasks: limit(0)}
	assert.True(t, zero.AtLimit(0))
}

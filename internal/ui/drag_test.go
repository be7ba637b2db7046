package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagokriok/taskboard/internal/application"
	"github.com/tiagokriok/taskboard/internal/domain"
)

func dragBoard() domain.Board {
	tasks := map[string]domain.Task{}
	add := func(id, title, status string) {
		tasks[id] = domain.Task{ID: id, Title: title, Status: status}
	}
	add("a", "alpha match", "todo")
	add("b", "bravo", "todo")
	add("c", "charlie match", "todo")
	add("d", "delta", "todo")
	add("x", "xray", "done")
	add("y", "yankee match", "done")
	add("z", "zulu", "done")
	return domain.NewBoard([]domain.Column{
		{ID: "todo", TaskIDs: []string{"a", "b", "c", "d"}},
		{ID: "done", TaskIDs: []string{"x", "y", "z"}},
		{ID: "empty", TaskIDs: []string{}},
	}, tasks)
}

func TestPlanDropTranslatesVisibleSlots(t *testing.T) {
	b := dragBoard()
	view := application.ProjectBoard(b, "match") // todo: a c, done: y

	tests := []struct {
		name      string
		task      string
		from, to  string
		slot      int
		wantIndex int
		wantOrder []string
	}{
		{name: "same column up", task: "c", from: "todo", to: "todo", slot: 0, wantIndex: 0, wantOrder: []string{"c", "a", "b", "d"}},
		{name: "same column to end", task: "a", from: "todo", to: "todo", slot: 1, wantIndex: 2, wantOrder: []string{"b", "c", "a", "d"}},
		{name: "before visible task", task: "a", from: "todo", to: "done", slot: 0, wantIndex: 1, wantOrder: []string{"x", "a", "y", "z"}},
		{name: "after last visible task", task: "a", from: "todo", to: "done", slot: 1, wantIndex: 2, wantOrder: []string{"x", "y", "a", "z"}},
		{name: "slot past end is clamped", task: "a", from: "todo", to: "done", slot: 9, wantIndex: 2, wantOrder: []string{"x", "y", "a", "z"}},
		{name: "empty column", task: "c", from: "todo", to: "empty", slot: 0, wantIndex: 0, wantOrder: []string{"c"}},
	}

	engine := application.NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, ok := planDrop(b, view, tt.task, tt.from, tt.to, tt.slot)
			require.True(t, ok)
			assert.Equal(t, tt.wantIndex, input.Index)

			after := engine.Move(b, input.TaskID, input.FromColumnID, input.ToColumnID, input.Index)
			col, _, _ := after.Column(tt.to)
			assert.Equal(t, tt.wantOrder, col.TaskIDs)
			require.NoError(t, after.Validate())
		})
	}
}

func TestPlanDropNoOps(t *testing.T) {
	b := dragBoard()
	view := application.ProjectBoard(b, "match")

	_, ok := planDrop(b, view, "c", "todo", "todo", 1)
	assert.False(t, ok, "dropping onto its own slot")

	_, ok = planDrop(b, view, "a", "todo", "todo", -3)
	assert.False(t, ok, "clamped onto its own slot")

	_, ok = planDrop(b, view, "a", "todo", "nowhere", 0)
	assert.False(t, ok)

	_, ok = planDrop(b, view, "x", "todo", "done", 0)
	assert.False(t, ok, "task not in source column")
}

func TestMaxSlot(t *testing.T) {
	b := dragBoard()
	view := application.ProjectBoard(b, "")
	assert.Equal(t, 3, maxSlot(view["todo"], "a"))
	assert.Equal(t, 3, maxSlot(view["done"], "a"))
	assert.Equal(t, 0, maxSlot(view["empty"], "a"))
}

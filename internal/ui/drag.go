package ui

import (
	"github.com/tiagokriok/taskboard/internal/application"
	"github.com/tiagokriok/taskboard/internal/domain"
)

// dragState tracks a keyboard drag. slot is the position the card would take
// in the visible list of the target column.
type dragState struct {
	taskID     string
	fromColumn string
	column     int
	slot       int
}

// visibleWithout returns the visible list of a column minus the dragged card.
func visibleWithout(visible []domain.Task, taskID string) []domain.Task {
	out := make([]domain.Task, 0, len(visible))
	for _, t := range visible {
		if t.ID != taskID {
			out = append(out, t)
		}
	}
	return out
}

// maxSlot is the last slot a card can be dropped into in a column.
func maxSlot(visible []domain.Task, taskID string) int {
	return len(visibleWithout(visible, taskID))
}

// planDrop turns a drop on a visible slot into an engine move. The returned
// index is a position in the destination's full task list after the card has
// been taken out of its source, so hidden (filtered) tasks keep their places.
// ok is false when the drop would not change anything.
func planDrop(b domain.Board, view map[string][]domain.Task, taskID, fromColumnID, toColumnID string, slot int) (application.MoveTaskInput, bool) {
	to, _, found := b.Column(toColumnID)
	if !found {
		return application.MoveTaskInput{}, false
	}
	from, _, found := b.Column(fromColumnID)
	if !found || !from.Contains(taskID) {
		return application.MoveTaskInput{}, false
	}

	visible := visibleWithout(view[toColumnID], taskID)
	if slot < 0 {
		slot = 0
	}
	if slot > len(visible) {
		slot = len(visible)
	}

	if fromColumnID == toColumnID {
		current := -1
		for i, t := range view[toColumnID] {
			if t.ID == taskID {
				current = i
				break
			}
		}
		if current == slot {
			return application.MoveTaskInput{}, false
		}
	}

	remaining := to.TaskIDs
	if fromColumnID == toColumnID {
		remaining = withoutID(to.TaskIDs, taskID)
	}

	index := 0
	switch {
	case len(visible) == 0:
		index = 0
	case slot < len(visible):
		index = indexOf(remaining, visible[slot].ID)
	default:
		index = indexOf(remaining, visible[len(visible)-1].ID) + 1
	}
	if index < 0 {
		index = len(remaining)
	}

	return application.MoveTaskInput{
		TaskID:       taskID,
		FromColumnID: fromColumnID,
		ToColumnID:   toColumnID,
		Index:        index,
	}, true
}

func withoutID(ids []string, taskID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != taskID {
			out = append(out, id)
		}
	}
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

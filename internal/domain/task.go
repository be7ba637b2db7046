package domain

import "time"

type Task struct {
	ID          string
	Title       string
	Description string
	// Status is the id of the column whose TaskIDs holds this task.
	Status    string
	Priority  Priority
	Assignee  string
	Tags      []string
	CreatedAt time.Time
	DueDate   *time.Time
}

// TaskFields carries everything a caller may supply when creating a task.
// ID, Status and CreatedAt are assigned by the engine.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Assignee    string
	Tags        []string
	DueDate     *time.Time
}

// TaskPatch is a partial update. Nil fields are left untouched.
// There is deliberately no Status field: column membership only changes through a move.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Assignee    *string
	Tags        *[]string
	DueDate     *time.Time
	ClearDue    bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Assignee == nil &&
		p.Tags == nil &&
		p.DueDate == nil &&
		!p.ClearDue
}

// Apply merges the patch over t and returns the result. t is not modified.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Assignee != nil {
		out.Assignee = *p.Assignee
	}
	if p.Tags != nil {
		out.Tags = cloneStrings(*p.Tags)
	}
	if p.ClearDue {
		out.DueDate = nil
	}
	if p.DueDate != nil {
		d := *p.DueDate
		out.DueDate = &d
	}
	return out
}

func (t Task) Clone() Task {
	out := t
	out.Tags = cloneStrings(t.Tags)
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	return out
}

// IsOverdue reports whether the due date lies on a day before now's day.
func (t Task) IsOverdue(now time.Time) bool {
	days, ok := t.DaysUntilDue(now)
	return ok && days < 0
}

// DaysUntilDue counts whole UTC calendar days from now to the due date; the
// time of day on either side is ignored. ok is false without a due date.
func (t Task) DaysUntilDue(now time.Time) (days int, ok bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return int(dateOnly(*t.DueDate).Sub(dateOnly(now)).Hours() / 24), true
}

func dateOnly(t time.Time) time.Time {
	v := t.UTC()
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

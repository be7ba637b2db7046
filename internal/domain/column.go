package domain

type Column struct {
	ID      string
	Title   string
	Color   string
	TaskIDs []string
	// MaxTasks is an advisory WIP limit. Nil means unlimited.
	MaxTasks *int
}

func (c Column) Clone() Column {
	out := c
	out.TaskIDs = cloneStrings(c.TaskIDs)
	if c.MaxTasks != nil {
		v := *c.MaxTasks
		out.MaxTasks = &v
	}
	return out
}

// IndexOf returns the position of taskID in the column, or -1.
func (c Column) IndexOf(taskID string) int {
	for i, id := range c.TaskIDs {
		if id == taskID {
			return i
		}
	}
	return -1
}

func (c Column) Contains(taskID string) bool {
	return c.IndexOf(taskID) >= 0
}

// AtLimit reports whether count has reached the column's WIP limit.
func (c Column) AtLimit(count int) bool {
	return c.MaxTasks != nil && count >= *c.MaxTasks
}

// OverLimit reports whether the column holds more tasks than its WIP limit.
func (c Column) OverLimit() bool {
	return c.MaxTasks != nil && len(c.TaskIDs) > *c.MaxTasks
}

package domain

import (
	"fmt"
	"strings"
)

// Priority is one of low, medium, high, urgent. The empty value means no priority.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the settable priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ParsePriority accepts any casing and surrounding whitespace.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if err := p.Validate(); err != nil {
		return PriorityNone, err
	}
	return p, nil
}

func (p Priority) Validate() error {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return fmt.Errorf("invalid priority %q: must be low, medium, high or urgent", string(p))
	}
}

func (p Priority) String() string {
	if p == PriorityNone {
		return "none"
	}
	return string(p)
}

// Rank orders priorities, higher is more important. None ranks 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

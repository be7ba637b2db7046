package providers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tiagokriok/taskboard/internal/domain"
)

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialIDs hands out prefix-1, prefix-2, ... and is safe for concurrent use.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequentialIDs(prefix string, start int) *SequentialIDs {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "task"
	}
	if start < 1 {
		start = 1
	}
	return &SequentialIDs{prefix: prefix, next: start}
}

func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}

// NewIDGenerator maps a configured style name to a generator.
func NewIDGenerator(style string) (domain.IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", "uuid":
		return NewUUIDGenerator(), nil
	case "sequential":
		return NewSequentialIDs("task", 1), nil
	default:
		return nil, fmt.Errorf("unknown task id style %q: must be uuid or sequential", style)
	}
}

package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/tiagokriok/taskboard/internal/domain"
)

// BoardRepository keeps the session board in memory. Writers are serialized by
// a mutex and swap in a whole new snapshot, so a reader never observes a
// half-applied operation.
type BoardRepository struct {
	mu      sync.RWMutex
	board   domain.Board
	version uint64
}

func NewBoardRepository() *BoardRepository {
	return &BoardRepository{board: domain.NewBoard(nil, nil)}
}

// Snapshot returns the current board. Callers must treat it as read-only.
func (r *BoardRepository) Snapshot(ctx context.Context) domain.Board {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.board
}

func (r *BoardRepository) Apply(ctx context.Context, fn func(domain.Board) (domain.Board, error)) (domain.Board, error) {
	if err := ctx.Err(); err != nil {
		return domain.Board{}, fmt.Errorf("apply board change: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.board)
	if err != nil {
		return r.board, err
	}
	r.board = next
	r.version++
	return next, nil
}

// Replace installs a deep copy of board after checking its invariants.
func (r *BoardRepository) Replace(ctx context.Context, board domain.Board) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("replace board: %w", err)
	}
	copied := board.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = copied
	r.version++
	return nil
}

// Version counts stored snapshots; it changes on every successful write.
func (r *BoardRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

package domain

import "context"

// BoardRepository holds the current board snapshot for a session.
type BoardRepository interface {
	Snapshot(ctx context.Context) Board
	// Apply runs fn against the current snapshot and stores its result.
	// Calls are serialized; readers only ever see whole snapshots.
	Apply(ctx context.Context, fn func(Board) (Board, error)) (Board, error)
	Replace(ctx context.Context, board Board) error
}

// BoardSource yields an initial board, e.g. from a board file.
type BoardSource interface {
	Load(ctx context.Context) (Board, error)
}

package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tiagokriok/taskboard/internal/domain"
)

type BootstrapResult struct {
	Board  domain.Board
	Source string
}

type BootstrapService struct {
	source domain.BoardSource
	repo   domain.BoardRepository
	logger log.FieldLogger
}

// NewBootstrapService seeds repo from source. A nil source falls back to the
// built-in sample board.
func NewBootstrapService(source domain.BoardSource, repo domain.BoardRepository, logger log.FieldLogger) *BootstrapService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BootstrapService{source: source, repo: repo, logger: logger}
}

func (s *BootstrapService) EnsureInitialBoard(ctx context.Context) (BootstrapResult, error) {
	board := DefaultBoard()
	origin := "sample"
	if s.source != nil {
		loaded, err := s.source.Load(ctx)
		if err != nil {
			return BootstrapResult{}, fmt.Errorf("load board: %w", err)
		}
		board = loaded
		origin = "file"
	}

	if len(board.Columns) == 0 {
		return BootstrapResult{}, fmt.Errorf("%w: no columns available after bootstrap", domain.ErrInvalidBoard)
	}
	if err := board.Validate(); err != nil {
		return BootstrapResult{}, err
	}
	if err := s.repo.Replace(ctx, board); err != nil {
		return BootstrapResult{}, err
	}

	s.logger.WithFields(log.Fields{
		"source":  origin,
		"columns": len(board.Columns),
		"tasks":   board.TaskCount(),
	}).Info("board ready")
	return BootstrapResult{Board: board, Source: origin}, nil
}

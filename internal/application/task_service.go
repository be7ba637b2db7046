package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tiagokriok/taskboard/internal/domain"
)

type CreateTaskInput struct {
	ColumnID    string
	Title       string
	Description string
	Priority    domain.Priority
	Assignee    string
	Tags        []string
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Assignee    *string
	Tags        *[]string
	DueDate     *time.Time
	ClearDue    bool
}

type MoveTaskInput struct {
	TaskID       string
	FromColumnID string
	ToColumnID   string
	Index        int
}

// TaskService is the boundary used by the form and gesture collaborators.
// It validates user input and applies engine operations through the repository,
// so each mutation is atomic for readers.
type TaskService struct {
	repo   domain.BoardRepository
	engine *Engine
	logger log.FieldLogger
}

func NewTaskService(repo domain.BoardRepository, engine *Engine, logger log.FieldLogger) *TaskService {
	if engine == nil {
		engine = NewEngine()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskService{repo: repo, engine: engine, logger: logger}
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, domain.ErrTitleRequired
	}
	if err := input.Priority.Validate(); err != nil {
		return domain.Task{}, err
	}

	fields := domain.TaskFields{
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		Assignee:    strings.TrimSpace(input.Assignee),
		Tags:        normalizeTags(input.Tags),
		DueDate:     input.DueDate,
	}

	var created domain.Task
	_, err := s.repo.Apply(ctx, func(b domain.Board) (domain.Board, error) {
		next, task, ok := s.engine.Create(b, input.ColumnID, fields)
		if !ok {
			return b, fmt.Errorf("create task in %q: %w", input.ColumnID, domain.ErrColumnNotFound)
		}
		created = task
		s.warnIfOverLimit(next, input.ColumnID)
		return next, nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("column", input.ColumnID).Warn("task not created")
		return domain.Task{}, err
	}
	s.logger.WithFields(log.Fields{"task": created.ID, "column": created.Status}).Info("task created")
	return created, nil
}

// UpdateTask merges the given fields. Unknown task ids are a silent no-op.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) error {
	patch := domain.TaskPatch{
		Title:       trimStringPointer(input.Title),
		Description: input.Description,
		Priority:    input.Priority,
		Assignee:    trimStringPointer(input.Assignee),
		Tags:        normalizeTagPatch(input.Tags),
		DueDate:     input.DueDate,
		ClearDue:    input.ClearDue,
	}
	if patch.Title != nil && *patch.Title == "" {
		return domain.ErrTitleRequired
	}
	if patch.Priority != nil {
		if err := patch.Priority.Validate(); err != nil {
			return err
		}
	}

	_, err := s.repo.Apply(ctx, func(b domain.Board) (domain.Board, error) {
		if _, ok := b.Task(taskID); !ok {
			s.logger.WithField("task", taskID).Debug("update ignored for unknown task")
			return b, nil
		}
		return s.engine.Update(b, taskID, patch), nil
	})
	if err != nil {
		return err
	}
	s.logger.WithField("task", taskID).Info("task updated")
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	_, err := s.repo.Apply(ctx, func(b domain.Board) (domain.Board, error) {
		return s.engine.Delete(b, taskID), nil
	})
	if err != nil {
		return err
	}
	s.logger.WithField("task", taskID).Info("task deleted")
	return nil
}

func (s *TaskService) MoveTask(ctx context.Context, input MoveTaskInput) error {
	_, err := s.repo.Apply(ctx, func(b domain.Board) (domain.Board, error) {
		next := s.engine.Move(b, input.TaskID, input.FromColumnID, input.ToColumnID, input.Index)
		if input.FromColumnID != input.ToColumnID {
			s.warnIfOverLimit(next, input.ToColumnID)
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"task":  input.TaskID,
		"from":  input.FromColumnID,
		"to":    input.ToColumnID,
		"index": input.Index,
	}).Info("task moved")
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	task, ok := s.repo.Snapshot(ctx).Task(taskID)
	if !ok {
		return domain.Task{}, fmt.Errorf("get task %q: %w", taskID, domain.ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskService) Snapshot(ctx context.Context) domain.Board {
	return s.repo.Snapshot(ctx)
}

// View returns the filtered per-column projection of the current board.
func (s *TaskService) View(ctx context.Context, searchTerm string) map[string][]domain.Task {
	return ProjectBoard(s.repo.Snapshot(ctx), searchTerm)
}

// CanAddTo reports whether the add affordance should be offered for a column.
// WIP limits are advisory; the engine itself never refuses a create or move.
func (s *TaskService) CanAddTo(ctx context.Context, columnID string) (bool, error) {
	col, _, ok := s.repo.Snapshot(ctx).Column(columnID)
	if !ok {
		return false, fmt.Errorf("column %q: %w", columnID, domain.ErrColumnNotFound)
	}
	return !col.AtLimit(len(col.TaskIDs)), nil
}

func (s *TaskService) warnIfOverLimit(b domain.Board, columnID string) {
	col, _, ok := b.Column(columnID)
	if !ok || !col.OverLimit() {
		return
	}
	s.logger.WithFields(log.Fields{
		"column": columnID,
		"count":  len(col.TaskIDs),
		"limit":  *col.MaxTasks,
	}).Warn("column over WIP limit")
}

// IsValidation reports whether err is a user-facing input error.
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrTitleRequired)
}

// normalizeTags trims entries and drops empty ones. Order and duplicates are kept.
func normalizeTags(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func normalizeTagPatch(in *[]string) *[]string {
	if in == nil {
		return nil
	}
	tags := normalizeTags(*in)
	return &tags
}

// SplitTags parses comma separated form input.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return normalizeTags(strings.Split(raw, ","))
}

func trimStringPointer(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

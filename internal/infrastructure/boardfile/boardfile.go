// Package boardfile reads and writes YAML board definitions.
//
// A board file lists columns in display order, each with its tasks in display
// order. It seeds the in-memory board at startup and is never written back.
package boardfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tiagokriok/taskboard/internal/domain"
)

const maxIDAttempts = 16

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const defaultColumnColor = "#9CA3AF"

type File struct {
	Columns []ColumnSpec `yaml:"columns"`
}

type ColumnSpec struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Color    string     `yaml:"color,omitempty"`
	MaxTasks *int       `yaml:"max_tasks,omitempty"`
	Tasks    []TaskSpec `yaml:"tasks,omitempty"`
}

type TaskSpec struct {
	ID          string     `yaml:"id,omitempty"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Priority    string     `yaml:"priority,omitempty"`
	Assignee    string     `yaml:"assignee,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	CreatedAt   *time.Time `yaml:"created_at,omitempty"`
	DueDate     *time.Time `yaml:"due_date,omitempty"`
}

// Source loads a board from a YAML file on disk.
type Source struct {
	path  string
	clock domain.Clock
	ids   domain.IDGenerator
}

func NewSource(path string, clock domain.Clock, ids domain.IDGenerator) *Source {
	return &Source{path: path, clock: clock, ids: ids}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Load(ctx context.Context) (domain.Board, error) {
	if strings.TrimSpace(s.path) == "" {
		return domain.Board{}, errors.New("board file path is required")
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Board{}, fmt.Errorf("read board file: %w", err)
	}
	board, err := Parse(content, s.clock, s.ids)
	if err != nil {
		return domain.Board{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return board, nil
}

// Parse decodes YAML into a well-formed board. Tasks without an id get one from
// ids; tasks without created_at get clock's time.
func Parse(content []byte, clock domain.Clock, ids domain.IDGenerator) (domain.Board, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Board{}, fmt.Errorf("%w: board file is empty", domain.ErrInvalidBoard)
		}
		return domain.Board{}, fmt.Errorf("decode board file: %w", err)
	}
	return file.Board(clock, ids)
}

func (f File) Board(clock domain.Clock, ids domain.IDGenerator) (domain.Board, error) {
	if len(f.Columns) == 0 {
		return domain.Board{}, fmt.Errorf("%w: at least one column is required", domain.ErrInvalidBoard)
	}

	// Explicit ids are reserved up front so a generated id never takes one
	// that appears later in the file.
	taken := make(map[string]bool)
	for _, cs := range f.Columns {
		for _, ts := range cs.Tasks {
			if id := strings.TrimSpace(ts.ID); id != "" {
				taken[id] = true
			}
		}
	}

	columns := make([]domain.Column, 0, len(f.Columns))
	tasks := make(map[string]domain.Task)
	for i, cs := range f.Columns {
		id := strings.TrimSpace(cs.ID)
		if id == "" {
			return domain.Board{}, fmt.Errorf("%w: column %d id is required", domain.ErrInvalidBoard, i+1)
		}
		title := strings.TrimSpace(cs.Title)
		if title == "" {
			title = id
		}
		color := strings.ToUpper(strings.TrimSpace(cs.Color))
		if color == "" {
			color = defaultColumnColor
		}
		if !hexColorPattern.MatchString(color) {
			return domain.Board{}, fmt.Errorf("%w: column %q color must be HEX (#RRGGBB)", domain.ErrInvalidBoard, id)
		}
		if cs.MaxTasks != nil && *cs.MaxTasks < 0 {
			return domain.Board{}, fmt.Errorf("%w: column %q max_tasks must not be negative", domain.ErrInvalidBoard, id)
		}

		col := domain.Column{ID: id, Title: title, Color: color, TaskIDs: make([]string, 0, len(cs.Tasks))}
		if cs.MaxTasks != nil {
			limit := *cs.MaxTasks
			col.MaxTasks = &limit
		}

		for j, ts := range cs.Tasks {
			task, err := ts.task(id, clock, ids, taken)
			if err != nil {
				return domain.Board{}, fmt.Errorf("%w: column %q task %d: %v", domain.ErrInvalidBoard, id, j+1, err)
			}
			if _, dup := tasks[task.ID]; dup {
				return domain.Board{}, fmt.Errorf("%w: duplicate task id %q", domain.ErrInvalidBoard, task.ID)
			}
			tasks[task.ID] = task
			col.TaskIDs = append(col.TaskIDs, task.ID)
		}
		columns = append(columns, col)
	}

	board := domain.NewBoard(columns, tasks)
	if err := board.Validate(); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

func (ts TaskSpec) task(columnID string, clock domain.Clock, ids domain.IDGenerator, taken map[string]bool) (domain.Task, error) {
	title := strings.TrimSpace(ts.Title)
	if title == "" {
		return domain.Task{}, domain.ErrTitleRequired
	}
	priority, err := domain.ParsePriority(ts.Priority)
	if err != nil {
		return domain.Task{}, err
	}

	id := strings.TrimSpace(ts.ID)
	if id == "" {
		if ids == nil {
			return domain.Task{}, errors.New("id is required")
		}
		id = generateID(ids, taken)
	}

	task := domain.Task{
		ID:          id,
		Title:       title,
		Description: ts.Description,
		Status:      columnID,
		Priority:    priority,
		Assignee:    strings.TrimSpace(ts.Assignee),
		Tags:        append([]string{}, ts.Tags...),
	}
	switch {
	case ts.CreatedAt != nil:
		task.CreatedAt = ts.CreatedAt.UTC()
	case clock != nil:
		task.CreatedAt = clock.Now()
	default:
		task.CreatedAt = time.Now().UTC()
	}
	if ts.DueDate != nil {
		due := ts.DueDate.UTC()
		task.DueDate = &due
	}
	return task, nil
}

func generateID(ids domain.IDGenerator, taken map[string]bool) string {
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = ids.NewID()
		if !taken[id] {
			taken[id] = true
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}

// FromBoard converts a board into its file form. With a non-nil visible map only
// those tasks are written, in the order given.
func FromBoard(b domain.Board, visible map[string][]domain.Task) File {
	file := File{Columns: make([]ColumnSpec, 0, len(b.Columns))}
	for _, col := range b.Columns {
		cs := ColumnSpec{ID: col.ID, Title: col.Title, Color: col.Color}
		if col.MaxTasks != nil {
			limit := *col.MaxTasks
			cs.MaxTasks = &limit
		}

		var tasks []domain.Task
		if visible != nil {
			tasks = visible[col.ID]
		} else {
			for _, id := range col.TaskIDs {
				if t, ok := b.Tasks[id]; ok {
					tasks = append(tasks, t)
				}
			}
		}
		for _, t := range tasks {
			cs.Tasks = append(cs.Tasks, taskSpecFrom(t))
		}
		file.Columns = append(file.Columns, cs)
	}
	return file
}

func taskSpecFrom(t domain.Task) TaskSpec {
	created := t.CreatedAt
	ts := TaskSpec{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Assignee:    t.Assignee,
		Tags:        t.Tags,
		CreatedAt:   &created,
	}
	if t.DueDate != nil {
		due := *t.DueDate
		ts.DueDate = &due
	}
	return ts
}

func Encode(w io.Writer, file File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode board file: %w", err)
	}
	return enc.Close()
}

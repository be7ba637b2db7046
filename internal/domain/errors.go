package domain

import "errors"

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrInvalidBoard   = errors.New("invalid board")
)

package calendar

import "errors"

var (
	ErrNoteNotFound = errors.New("personal note not found")
	ErrUnauthorized = errors.New("not allowed to access this note")
)

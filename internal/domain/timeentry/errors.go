package timeentry

import "errors"

var (
	ErrEntryNotFound       = errors.New("time entry not found")
	ErrEntryNotPending     = errors.New("time entry has already been approved or rejected")
	ErrDuplicateSegment    = errors.New("a punch with this session and segment already exists")
	ErrUnauthorized        = errors.New("not allowed to access this time entry")
	ErrDateTooOld          = errors.New("date is too far in the past")
	ErrInvalidStatusChange = errors.New("status can only change from pending to approved or rejected")
)

package timeentry

import (
	"math"
	"time"
)

// Status of a time entry. Transitions are one-way:
// pending -> approved or pending -> rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// EntryType distinguishes how the segment was recorded.
type EntryType string

const (
	TypeRegular  EntryType = "regular"
	TypeOvertime EntryType = "overtime"
)

type TimeEntry struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	StartTime       string // "HH:MM"
	EndTime         string // "HH:MM"
	EntryType       EntryType
	Status          Status
	TotalHours      float64
	Notes           *string
	SessionID       string
	SegmentIndex    int
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeName   *string
	DepartmentName *string
}

// CanTransitionTo reports whether the status change is allowed.
func (e *TimeEntry) CanTransitionTo(next Status) bool {
	return e.Status == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// IsEditable reports whether the entry may still be edited or deleted.
func (e *TimeEntry) IsEditable() bool {
	return e.Status == StatusPending
}

// ComputeTotalHours returns the span between two wall-clock times in hours,
// rounded to two decimals. An end before (or equal to) the start is treated
// as crossing midnight: 22:00 -> 06:00 is 8 hours.
func ComputeTotalHours(startTime, endTime time.Time) float64 {
	startMinutes := startTime.Hour()*60 + startTime.Minute()
	endMinutes := endTime.Hour()*60 + endTime.Minute()

	diff := endMinutes - startMinutes
	if diff <= 0 {
		diff += 24 * 60
	}

	return math.Round(float64(diff)/60*100) / 100
}

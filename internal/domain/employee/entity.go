package employee

import "time"

type Employee struct {
	ID                 string
	FullName           string
	Email              string
	DepartmentID       *string
	ProfilePicturePath *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO / Join
	DepartmentName *string
}

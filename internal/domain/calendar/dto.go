package calendar

import "github.com/punchstack/punchclock-backend-go/internal/pkg/validator"

type UpdateSettingsRequest struct {
	Holidays    map[string]string `json:"holidays"`
	Notes       map[string]string `json:"notes"`
	WeekendDays []int             `json:"weekend_days"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	for date := range r.Holidays {
		if _, ok := validator.IsValidDate(date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "holidays",
				Message: "holiday key " + date + " must be in YYYY-MM-DD format",
			})
		}
	}
	for date := range r.Notes {
		if _, ok := validator.IsValidDate(date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "notes",
				Message: "note key " + date + " must be in YYYY-MM-DD format",
			})
		}
	}

	seen := make(map[int]bool)
	for _, d := range r.WeekendDays {
		if !validator.IsValidWeekday(d) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekend_days",
				Message: "weekend day must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
		if seen[d] {
			errs = append(errs, validator.ValidationError{
				Field:   "weekend_days",
				Message: "weekend days must not repeat",
			})
			break
		}
		seen[d] = true
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpsertHolidayRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Remove bool   `json:"remove,omitempty"`
}

func (r *UpsertHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !r.Remove && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PersonalNoteRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	Note       string `json:"note"`
}

func (r *PersonalNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	}
	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	Holidays      map[string]string `json:"holidays"`
	Notes         map[string]string `json:"notes"`
	PersonalNotes map[string]string `json:"personal_notes,omitempty"`
	WeekendDays   []int             `json:"weekend_days"`
	Grid          MonthGrid         `json:"grid"`
}

type PersonalNoteResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Note      string `json:"note"`
	UpdatedAt string `json:"updated_at"`
}

func ToNoteResponse(n PersonalNote) PersonalNoteResponse {
	return PersonalNoteResponse{
		ID:        n.ID,
		Date:      n.Date.Format("2006-01-02"),
		Note:      n.Note,
		UpdatedAt: n.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

package export

import (
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Format      string       `json:"format"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	EmployeeIDs []string     `json:"employee_ids,omitempty"`
	Include     IncludeFlags `json:"include"`

	RequestedBy string `json:"-"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Format, []string{string(FormatCSV), string(FormatXLSX), string(FormatPDF)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx, pdf",
		})
	}

	var start, end time.Time
	var ok bool
	if start, ok = validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if end, ok = validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !r.Include.Any() {
		errs = append(errs, validator.ValidationError{
			Field:   "include",
			Message: "at least one column must be included",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PreviewRequest struct {
	GenerateRequest
	Limit int `json:"limit"`
}

func (r *PreviewRequest) Validate() error {
	if r.Limit <= 0 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	// Preview never writes a file, so any format passes through to the
	// same row pipeline.
	if r.Format == "" {
		r.Format = string(FormatCSV)
	}
	return r.GenerateRequest.Validate()
}

type PreviewResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

type JobResponse struct {
	ID          string       `json:"id"`
	Format      string       `json:"format"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	EmployeeIDs []string     `json:"employee_ids,omitempty"`
	Include     IncludeFlags `json:"include"`
	Status      string       `json:"status"`
	DownloadURL *string      `json:"download_url,omitempty"`
	RowCount    int          `json:"row_count"`
	CreatedAt   string       `json:"created_at"`
	ExpiresAt   string       `json:"expires_at"`
}

func ToJobResponse(j ExportJob, downloadURL *string) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Format:      string(j.Format),
		StartDate:   j.StartDate.Format("2006-01-02"),
		EndDate:     j.EndDate.Format("2006-01-02"),
		EmployeeIDs: j.EmployeeIDs,
		Include:     j.Include,
		Status:      string(j.Status),
		DownloadURL: downloadURL,
		RowCount:    j.RowCount,
		CreatedAt:   j.CreatedAt.Format("2006-01-02 15:04:05"),
		ExpiresAt:   j.ExpiresAt.Format("2006-01-02 15:04:05"),
	}
}

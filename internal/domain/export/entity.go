package export

import "time"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ExportJob records a generated report: what was asked for and where the
// rendered file lives. Files past ExpiresAt are purged by the retention job.
type ExportJob struct {
	ID          string
	Format      Format
	StartDate   time.Time
	EndDate     time.Time
	EmployeeIDs []string // empty means all employees
	Include     IncludeFlags
	Status      JobStatus
	FilePath    *string
	RowCount    int
	RequestedBy string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// IncludeFlags selects which computed columns appear in the report.
// At least one flag must be set.
type IncludeFlags struct {
	TotalHours    bool `json:"total_hours"`
	RegularHours  bool `json:"regular_hours"`
	OvertimeHours bool `json:"overtime_hours"`
	Status        bool `json:"status"`
}

func (f IncludeFlags) Any() bool {
	return f.TotalHours || f.RegularHours || f.OvertimeHours || f.Status
}

// ReportRow is one aggregated line of an export: per-employee totals over
// the requested date range. Regular hours are capped at eight per day and
// the excess counts as overtime.
type ReportRow struct {
	EmployeeName   string
	DepartmentName string
	TotalHours     float64
	RegularHours   float64
	OvertimeHours  float64
	Status         string
}

package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/sse"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/storage"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

// Regular hours are capped per day; anything above is overtime.
const regularHoursPerDay = 8.0

const recentJobsLimit = 20

type ExportServiceImpl struct {
	export.ExportRepository
	entryRepository timeentry.TimeEntryRepository
	fileStorage     storage.FileStorage
	hub             *sse.Hub
	retentionDays   int
	previewRows     int
	now             func() time.Time
}

func NewExportService(
	repo export.ExportRepository,
	entryRepo timeentry.TimeEntryRepository,
	fileStorage storage.FileStorage,
	hub *sse.Hub,
	retentionDays int,
	previewRows int,
) export.ExportService {
	return &ExportServiceImpl{
		ExportRepository: repo,
		entryRepository:  entryRepo,
		fileStorage:      fileStorage,
		hub:              hub,
		retentionDays:    retentionDays,
		previewRows:      previewRows,
		now:              time.Now,
	}
}

// buildRows aggregates entries into one row per employee. Daily totals are
// split into regular (capped) and overtime portions before summing.
func buildRows(entries []timeentry.TimeEntry, employeeIDs []string) []export.ReportRow {
	allowed := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		allowed[id] = true
	}

	type accumulator struct {
		name       string
		department string
		daily      map[string]float64
		statuses   map[timeentry.Status]bool
	}

	byEmployee := make(map[string]*accumulator)
	var order []string
	for _, e := range entries {
		if len(allowed) > 0 && !allowed[e.EmployeeID] {
			continue
		}

		acc, ok := byEmployee[e.EmployeeID]
		if !ok {
			acc = &accumulator{
				daily:    make(map[string]float64),
				statuses: make(map[timeentry.Status]bool),
			}
			if e.EmployeeName != nil {
				acc.name = *e.EmployeeName
			}
			if e.DepartmentName != nil {
				acc.department = *e.DepartmentName
			}
			byEmployee[e.EmployeeID] = acc
			order = append(order, e.EmployeeID)
		}

		acc.daily[e.Date.Format("2006-01-02")] += e.TotalHours
		acc.statuses[e.Status] = true
	}

	sort.Slice(order, func(i, j int) bool {
		return byEmployee[order[i]].name < byEmployee[order[j]].name
	})

	rows := make([]export.ReportRow, 0, len(order))
	for _, id := range order {
		acc := byEmployee[id]

		var total, regular, overtime float64
		for _, dayHours := range acc.daily {
			total += dayHours
			dayRegular := dayHours
			if dayRegular > regularHoursPerDay {
				dayRegular = regularHoursPerDay
			}
			regular += dayRegular
			overtime += dayHours - dayRegular
		}

		rows = append(rows, export.ReportRow{
			EmployeeName:   acc.name,
			DepartmentName: acc.department,
			TotalHours:     total,
			RegularHours:   regular,
			OvertimeHours:  overtime,
			Status:         summarizeStatus(acc.statuses),
		})
	}
	return rows
}

func summarizeStatus(statuses map[timeentry.Status]bool) string {
	if len(statuses) == 1 {
		for s := range statuses {
			return string(s)
		}
	}
	return "mixed"
}

func buildColumns(include export.IncludeFlags) []string {
	columns := []string{"Name", "Department"}
	if include.TotalHours {
		columns = append(columns, "Total Hours")
	}
	if include.RegularHours {
		columns = append(columns, "Regular Hours")
	}
	if include.OvertimeHours {
		columns = append(columns, "Overtime Hours")
	}
	if include.Status {
		columns = append(columns, "Status")
	}
	return columns
}

func buildRecord(row export.ReportRow, include export.IncludeFlags) []string {
	record := []string{row.EmployeeName, row.DepartmentName}
	if include.TotalHours {
		record = append(record, fmt.Sprintf("%.1f", row.TotalHours))
	}
	if include.RegularHours {
		record = append(record, fmt.Sprintf("%.1f", row.RegularHours))
	}
	if include.OvertimeHours {
		record = append(record, fmt.Sprintf("%.1f", row.OvertimeHours))
	}
	if include.Status {
		record = append(record, row.Status)
	}
	return record
}

func (s *ExportServiceImpl) loadRows(ctx context.Context, req export.GenerateRequest) ([]export.ReportRow, error) {
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	entries, err := s.entryRepository.ListForExport(ctx, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for export: %w", err)
	}
	return buildRows(entries, req.EmployeeIDs), nil
}

func render(format export.Format, columns []string, records [][]string) ([]byte, string, error) {
	switch format {
	case export.FormatCSV:
		data, err := renderCSV(columns, records)
		return data, "text/csv", err
	case export.FormatXLSX:
		data, err := renderXLSX(columns, records)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case export.FormatPDF:
		data, err := renderPDF(columns, records)
		return data, "application/pdf", err
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// Generate implements export.ExportService.
func (s *ExportServiceImpl) Generate(ctx context.Context, req export.GenerateRequest) (export.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return export.JobResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	now := s.now().UTC()

	job, err := s.ExportRepository.Create(ctx, export.ExportJob{
		Format:      export.Format(req.Format),
		StartDate:   start,
		EndDate:     end,
		EmployeeIDs: req.EmployeeIDs,
		Include:     req.Include,
		Status:      export.JobPending,
		RequestedBy: req.RequestedBy,
		ExpiresAt:   now.AddDate(0, 0, s.retentionDays),
	})
	if err != nil {
		return export.JobResponse{}, err
	}

	rows, err := s.loadRows(ctx, req)
	if err != nil {
		_ = s.ExportRepository.MarkFailed(ctx, job.ID)
		return export.JobResponse{}, err
	}

	columns := buildColumns(req.Include)
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(row, req.Include))
	}

	data, contentType, err := render(job.Format, columns, records)
	if err != nil {
		_ = s.ExportRepository.MarkFailed(ctx, job.ID)
		return export.JobResponse{}, err
	}

	filePath := fmt.Sprintf("exports/%s.%s", job.ID, job.Format)
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), filePath, contentType); err != nil {
		_ = s.ExportRepository.MarkFailed(ctx, job.ID)
		return export.JobResponse{}, fmt.Errorf("failed to store export file: %w", err)
	}

	if err := s.ExportRepository.MarkCompleted(ctx, job.ID, filePath, len(rows)); err != nil {
		return export.JobResponse{}, err
	}

	completed, err := s.ExportRepository.GetByID(ctx, job.ID)
	if err != nil {
		return export.JobResponse{}, err
	}

	s.hub.Publish(req.RequestedBy, sse.Event{
		UserID: req.RequestedBy,
		Name:   sse.EventExportReady,
		Data:   map[string]string{"id": job.ID},
	})

	return s.toJobResponse(ctx, completed), nil
}

func (s *ExportServiceImpl) toJobResponse(ctx context.Context, job export.ExportJob) export.JobResponse {
	var downloadURL *string
	if job.Status == export.JobCompleted && job.FilePath != nil {
		if url, err := s.fileStorage.GetURL(ctx, *job.FilePath, 0); err == nil {
			downloadURL = &url
		}
	}
	return export.ToJobResponse(job, downloadURL)
}

// Preview implements export.ExportService. Same row pipeline as Generate,
// but nothing is persisted.
func (s *ExportServiceImpl) Preview(ctx context.Context, req export.PreviewRequest) (export.PreviewResponse, error) {
	if req.Limit <= 0 {
		req.Limit = s.previewRows
	}
	if err := req.Validate(); err != nil {
		return export.PreviewResponse{}, err
	}

	rows, err := s.loadRows(ctx, req.GenerateRequest)
	if err != nil {
		return export.PreviewResponse{}, err
	}

	total := len(rows)
	if len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(row, req.Include))
	}

	return export.PreviewResponse{
		Columns: buildColumns(req.Include),
		Rows:    records,
		Total:   total,
	}, nil
}

// ListRecent implements export.ExportService.
func (s *ExportServiceImpl) ListRecent(ctx context.Context) ([]export.JobResponse, error) {
	jobs, err := s.ExportRepository.ListRecent(ctx, recentJobsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}

	responses := make([]export.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, s.toJobResponse(ctx, job))
	}
	return responses, nil
}

// DeleteJob implements export.ExportService.
func (s *ExportServiceImpl) DeleteJob(ctx context.Context, id string) error {
	job, err := s.ExportRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ExportRepository.Delete(ctx, id); err != nil {
		return err
	}
	if job.FilePath != nil {
		_ = s.fileStorage.Delete(ctx, *job.FilePath)
	}
	return nil
}

// Download implements export.ExportService.
func (s *ExportServiceImpl) Download(ctx context.Context, id string) ([]byte, string, string, error) {
	job, err := s.ExportRepository.GetByID(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	if job.Status != export.JobCompleted || job.FilePath == nil {
		return nil, "", "", export.ErrFileNotReady
	}

	reader, err := s.fileStorage.Download(ctx, *job.FilePath)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read export file: %w", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("report_%s_%s.%s",
		job.StartDate.Format("2006-01-02"), job.EndDate.Format("2006-01-02"), job.Format)

	contentType := "application/octet-stream"
	switch job.Format {
	case export.FormatCSV:
		contentType = "text/csv"
	case export.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case export.FormatPDF:
		contentType = "application/pdf"
	}

	return buf.Bytes(), filename, contentType, nil
}

// PurgeExpired implements export.ExportService.
func (s *ExportServiceImpl) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.ExportRepository.ListExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired exports: %w", err)
	}

	purged := 0
	for _, job := range expired {
		if job.FilePath != nil {
			if err := s.fileStorage.Delete(ctx, *job.FilePath); err != nil {
				slog.Warn("failed to delete expired export file",
					slog.String("job_id", job.ID),
					slog.String("error", err.Error()))
			}
		}
		if err := s.ExportRepository.Delete(ctx, job.ID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

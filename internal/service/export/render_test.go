package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(employeeID, name, dept, date string, hours float64, status timeentry.Status) timeentry.TimeEntry {
	d, _ := time.Parse("2006-01-02", date)
	return timeentry.TimeEntry{
		EmployeeID:     employeeID,
		EmployeeName:   &name,
		DepartmentName: &dept,
		Date:           d,
		TotalHours:     hours,
		Status:         status,
	}
}

func TestBuildRowsOvertimeSplit(t *testing.T) {
	entries := []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 10, timeentry.StatusApproved),
		entry("emp-1", "Ada", "Engineering", "2026-08-25", 6, timeentry.StatusApproved),
		entry("emp-2", "Bob", "Sales", "2026-08-24", 8, timeentry.StatusPending),
	}

	rows := buildRows(entries, nil)
	require.Len(t, rows, 2)

	// Sorted by name.
	ada := rows[0]
	assert.Equal(t, "Ada", ada.EmployeeName)
	assert.Equal(t, 16.0, ada.TotalHours)
	assert.Equal(t, 14.0, ada.RegularHours) // 8 capped + 6
	assert.Equal(t, 2.0, ada.OvertimeHours)
	assert.Equal(t, "approved", ada.Status)

	bob := rows[1]
	assert.Equal(t, 8.0, bob.TotalHours)
	assert.Equal(t, 0.0, bob.OvertimeHours)
	assert.Equal(t, "pending", bob.Status)
}

func TestBuildRowsSplitSessionsShareDailyCap(t *testing.T) {
	// Two segments of one day: 5 + 5 hours. The cap applies to the day,
	// not the segment.
	entries := []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 5, timeentry.StatusApproved),
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 5, timeentry.StatusApproved),
	}

	rows := buildRows(entries, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].TotalHours)
	assert.Equal(t, 8.0, rows[0].RegularHours)
	assert.Equal(t, 2.0, rows[0].OvertimeHours)
}

func TestBuildRowsEmployeeFilter(t *testing.T) {
	entries := []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-2", "Bob", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
	}

	rows := buildRows(entries, []string{"emp-2"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].EmployeeName)
}

func TestBuildRowsMixedStatus(t *testing.T) {
	entries := []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-1", "Ada", "Engineering", "2026-08-25", 8, timeentry.StatusRejected),
	}

	rows := buildRows(entries, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "mixed", rows[0].Status)
}

func TestRenderCSVColumns(t *testing.T) {
	include := export.IncludeFlags{TotalHours: true, RegularHours: true, OvertimeHours: true, Status: true}
	row := export.ReportRow{
		EmployeeName:   "Ada",
		DepartmentName: "Engineering",
		TotalHours:     16,
		RegularHours:   14,
		OvertimeHours:  2,
		Status:         "approved",
	}

	data, err := renderCSV(buildColumns(include), [][]string{buildRecord(row, include)})
	require.NoError(t, err)

	parsed, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"Name", "Department", "Total Hours", "Regular Hours", "Overtime Hours", "Status"}, parsed[0])
	assert.Equal(t, []string{"Ada", "Engineering", "16.0", "14.0", "2.0", "approved"}, parsed[1])
}

func TestRenderCSVSubsetOfColumns(t *testing.T) {
	include := export.IncludeFlags{TotalHours: true}
	row := export.ReportRow{EmployeeName: "Ada", DepartmentName: "Engineering", TotalHours: 7.25}

	data, err := renderCSV(buildColumns(include), [][]string{buildRecord(row, include)})
	require.NoError(t, err)

	parsed, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Department", "Total Hours"}, parsed[0])
	assert.Equal(t, []string{"Ada", "Engineering", "7.2"}, parsed[1])
}

func TestRenderXLSX(t *testing.T) {
	include := export.IncludeFlags{TotalHours: true, Status: true}
	row := export.ReportRow{EmployeeName: "Ada", DepartmentName: "Engineering", TotalHours: 8, Status: "approved"}

	data, err := renderXLSX(buildColumns(include), [][]string{buildRecord(row, include)})
	require.NoError(t, err)
	// XLSX is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestRenderPDF(t *testing.T) {
	include := export.IncludeFlags{TotalHours: true}
	row := export.ReportRow{EmployeeName: "Ada (QA)", DepartmentName: "Engineering", TotalHours: 8}

	data, err := renderPDF(buildColumns(include), [][]string{buildRecord(row, include)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-1.4"))
	assert.Contains(t, string(data), "Ada \\(QA\\)")
	assert.Contains(t, string(data), "%%EOF")
}

package dashboard

type SummaryResponse struct {
	EmployeeCount    int64   `json:"employee_count"`
	EntriesToday     int64   `json:"entries_today"`
	PendingApprovals int64   `json:"pending_approvals"`
	HoursToday       float64 `json:"hours_today"`
}

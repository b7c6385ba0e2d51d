package report

// MonthlySummary aggregates one user's attendance over one calendar month.
type MonthlySummary struct {
	TotalHours float64 `json:"total_hours"`
	// AverageHours is TotalHours over the row count, 0 for an empty month.
	AverageHours float64 `json:"average_hours"`
	// AverageCheckInTime is the mean in-time-of-day formatted "HH:MM",
	// blank for an empty month.
	AverageCheckInTime string `json:"average_check_in_time"`
}

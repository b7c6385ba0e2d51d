package report

import (
	"context"
	"time"
)

// ReportService produces attendance summaries and the six-month CSV export.
type ReportService interface {
	// MonthlySummary aggregates the user's rows in [monthStart, monthEnd].
	MonthlySummary(ctx context.Context, userID string, monthStart, monthEnd time.Time) (MonthlySummary, error)

	// SixMonthCSV renders one CSV row per user covering the six most
	// recently completed calendar months, newest first.
	SixMonthCSV(ctx context.Context) ([]byte, error)
}

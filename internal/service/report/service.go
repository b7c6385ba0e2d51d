package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/domain/report"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
)

// monthsInWindow is how many completed calendar months the CSV covers.
const monthsInWindow = 6

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository

	// now is the clock; swapped out in tests.
	now func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// summarize aggregates attendance rows into a monthly summary. Rows with
// unset total_hours contribute nothing to the totals but still count
// toward the check-in time average.
func summarize(rows []attendance.Attendance) report.MonthlySummary {
	if len(rows) == 0 {
		return report.MonthlySummary{}
	}

	var totalHours float64
	var totalMinutes int
	for i := range rows {
		if rows[i].TotalHours != nil {
			totalHours += *rows[i].TotalHours
		}
		in := rows[i].InTime
		totalMinutes += in.Hour()*60 + in.Minute()
	}

	meanMinutes := totalMinutes / len(rows)

	return report.MonthlySummary{
		TotalHours:         totalHours,
		AverageHours:       math.Round(totalHours/float64(len(rows))*100) / 100,
		AverageCheckInTime: fmt.Sprintf("%02d:%02d", meanMinutes/60, meanMinutes%60),
	}
}

// monthBounds returns the first and last day of the month `back` months
// before the current one. back=1 is last month.
func (s *ReportServiceImpl) monthBounds(back int) (start, end time.Time) {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start = first.AddDate(0, -back, 0)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// MonthlySummary implements report.ReportService.
func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, userID string, monthStart, monthEnd time.Time) (report.MonthlySummary, error) {
	rows, err := s.attendanceRepo.ListByUserAndRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to load attendance rows: %w", err)
	}
	return summarize(rows), nil
}

// SixMonthCSV implements report.ReportService.
func (s *ReportServiceImpl) SixMonthCSV(ctx context.Context) ([]byte, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header row 1: month names over each three-column block.
	monthHeader := []string{""}
	for back := 1; back <= monthsInWindow; back++ {
		start, _ := s.monthBounds(back)
		monthHeader = append(monthHeader, start.Format("January 2006"), "", "")
	}
	if err := w.Write(monthHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	// Header row 2: column labels.
	colHeader := []string{"User email"}
	for back := 1; back <= monthsInWindow; back++ {
		colHeader = append(colHeader, "Total hours", "Average hours", "Average in time")
	}
	if err := w.Write(colHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, u := range users {
		row := []string{u.Email}
		for back := 1; back <= monthsInWindow; back++ {
			start, end := s.monthBounds(back)
			summary, err := s.MonthlySummary(ctx, u.ID, start, end)
			if err != nil {
				return nil, err
			}
			row = append(row,
				strconv.FormatFloat(summary.TotalHours, 'f', 2, 64),
				strconv.FormatFloat(summary.AverageHours, 'f', 2, 64),
				summary.AverageCheckInTime,
			)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

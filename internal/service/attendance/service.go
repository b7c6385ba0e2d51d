package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
	}
}

// today returns the current UTC calendar day.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		CheckinDate:  a.CheckinDate.Format("2006-01-02"),
		InTime:       a.InTime.Format("2006-01-02 15:04:05"),
		OutTime:      timePtrToString(a.OutTime),
		IsFirstEntry: a.IsFirstEntry,
		TotalHours:   a.TotalHours,
		ParentID:     a.ParentID,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	day := now.Truncate(24 * time.Hour)

	open, err := s.AttendanceRepository.GetOpenEntry(ctx, userID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up open entry: %w", err)
	}
	if open != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:      userID,
		CheckinDate: day,
		InTime:      now,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	if err := s.MarkFirstEntryOfDay(ctx, userID, day); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.BackfillMissingCheckout(ctx, userID, day); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Re-read so the response reflects the first-entry flag set above.
	if !created.IsFirstEntry {
		refreshed, err := s.AttendanceRepository.GetEarliestEntryOn(ctx, userID, day)
		if err == nil && refreshed != nil && refreshed.ID == created.ID {
			created = *refreshed
		}
	}

	return toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now().UTC()
	day := now.Truncate(24 * time.Hour)

	open, err := s.AttendanceRepository.GetOpenEntry(ctx, userID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up open entry: %w", err)
	}
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	hours := math.Round(now.Sub(open.InTime).Hours()*100) / 100

	open.OutTime = &now
	open.TotalHours = &hours

	if err := s.AttendanceRepository.Update(ctx, *open); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	return toResponse(*open), nil
}

// FindTodaysOpenEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FindTodaysOpenEntry(ctx context.Context, userID string) (*attendance.Attendance, error) {
	return s.AttendanceRepository.GetOpenEntry(ctx, userID, today())
}

// MarkFirstEntryOfDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkFirstEntryOfDay(ctx context.Context, userID string, day time.Time) error {
	flagged, err := s.AttendanceRepository.HasFirstEntryOn(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("failed to check first-entry flag: %w", err)
	}
	if flagged {
		return nil
	}

	earliest, err := s.AttendanceRepository.GetEarliestEntryOn(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("failed to find earliest entry: %w", err)
	}
	if earliest == nil {
		return nil
	}

	earliest.IsFirstEntry = true
	if err := s.AttendanceRepository.Update(ctx, *earliest); err != nil {
		return fmt.Errorf("failed to flag first entry: %w", err)
	}

	return nil
}

// BackfillMissingCheckout implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BackfillMissingCheckout(ctx context.Context, userID string, day time.Time) error {
	stale, err := s.AttendanceRepository.GetLastUnclosedFirstEntry(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("failed to find unclosed entry: %w", err)
	}
	if stale == nil {
		return nil
	}

	hours := attendance.DefaultBackfillHours
	stale.TotalHours = &hours

	if err := s.AttendanceRepository.Update(ctx, *stale); err != nil {
		return fmt.Errorf("failed to backfill checkout: %w", err)
	}

	return nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, userID string, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	filter.UserID = &userID
	return s.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toResponse(row))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

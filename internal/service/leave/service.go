package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
	"github.com/officetrack/attendance-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	leave.TrackerRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository

	// runInTx wraps a unit of work in a database transaction.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	trackerRepo leave.TrackerRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                db,
		LeaveRepository:   leaveRepo,
		TrackerRepository: trackerRepo,
		attendanceRepo:    attendanceRepo,
		userRepo:          userRepo,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func toResponse(l leave.Leave) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserName:  l.UserName,
		Type:      string(l.Type),
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   datePtrToString(l.EndDate),
		Status:    string(l.Status),
		Reason:    l.Reason,
		DecidedBy: l.DecidedBy,
		DecidedAt: l.DecidedAt,
		CreatedAt: l.CreatedAt,
	}
}

// Request implements leave.LeaveService.
func (s *LeaveServiceImpl) Request(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		end = &parsed
	}

	rangeEnd := start
	if end != nil {
		rangeEnd = *end
	}

	overlapping, err := s.LeaveRepository.FindAcceptedOverlapping(ctx, userID, start, rangeEnd)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	if len(overlapping) > 0 {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		UserID:    userID,
		Type:      leave.Type(req.Type),
		StartDate: start,
		EndDate:   end,
		Status:    leave.StatusPending,
		Reason:    req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return toResponse(created), nil
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, leaveID string, req leave.DecideLeaveRequest, deciderID string) (leave.LeaveResponse, *leave.Notice, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, nil, err
	}

	l, err := s.LeaveRepository.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, nil, err
	}

	if l.Status != leave.StatusPending {
		return leave.LeaveResponse{}, nil, leave.ErrAlreadyProcessed
	}

	outcome := leave.Status(req.Outcome)
	now := time.Now().UTC()

	if outcome == leave.StatusAccepted {
		// Status change and balance recompute commit or fail together.
		err = s.runInTx(ctx, func(txCtx context.Context) error {
			if err := s.LeaveRepository.UpdateStatus(txCtx, leaveID, outcome, &deciderID, now); err != nil {
				return fmt.Errorf("failed to accept leave: %w", err)
			}
			return s.onLeaveAccepted(txCtx, l.UserID)
		})
	} else {
		err = s.LeaveRepository.UpdateStatus(ctx, leaveID, outcome, &deciderID, now)
	}
	if err != nil {
		return leave.LeaveResponse{}, nil, err
	}

	l.Status = outcome
	l.DecidedBy = &deciderID
	l.DecidedAt = &now

	notice := &leave.Notice{Leave: l}
	if l.UserEmail != nil {
		notice.UserEmail = *l.UserEmail
	}
	if l.UserName != nil {
		notice.UserName = *l.UserName
	}

	return toResponse(l), notice, nil
}

// HasActiveLeaveOn implements leave.LeaveService.
func (s *LeaveServiceImpl) HasActiveLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error) {
	covering, err := s.LeaveRepository.FindAcceptedCovering(ctx, userID, date.Truncate(24*time.Hour))
	if err != nil {
		return false, fmt.Errorf("failed to find covering leaves: %w", err)
	}
	return len(covering) > 0, nil
}

// RunUnannouncedSweep implements leave.LeaveService.
func (s *LeaveServiceImpl) RunUnannouncedSweep(ctx context.Context) ([]leave.Notice, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	now := time.Now().UTC()

	var notices []leave.Notice
	for _, u := range users {
		present, err := s.attendanceRepo.HasEntryOn(ctx, u.ID, day)
		if err != nil {
			slog.Error("Sweep: attendance lookup failed", "user_id", u.ID, "error", err)
			continue
		}
		if present {
			continue
		}

		var created leave.Leave
		// Check and insert run in one transaction per user so a
		// concurrent sweep cannot double-create.
		err = s.runInTx(ctx, func(txCtx context.Context) error {
			covered, err := s.HasActiveLeaveOn(txCtx, u.ID, day)
			if err != nil {
				return err
			}
			if covered {
				return nil
			}

			created, err = s.LeaveRepository.Create(txCtx, leave.Leave{
				UserID:    u.ID,
				Type:      leave.TypeUnannounced,
				StartDate: day,
				Status:    leave.StatusAccepted,
				Reason:    "no check-in and no approved leave",
				DecidedAt: &now,
			})
			if err != nil {
				return fmt.Errorf("failed to create unannounced leave: %w", err)
			}

			return s.onLeaveAccepted(txCtx, u.ID)
		})
		if err != nil {
			slog.Error("Sweep: failed for user", "user_id", u.ID, "error", err)
			continue
		}
		if created.ID == "" {
			continue
		}

		notices = append(notices, leave.Notice{
			Leave:     created,
			UserEmail: u.Email,
			UserName:  u.Name,
		})
	}

	return notices, nil
}

// GetTracker implements leave.LeaveService.
func (s *LeaveServiceImpl) GetTracker(ctx context.Context, userID string) (leave.TrackerResponse, error) {
	t, err := s.TrackerRepository.GetByUserID(ctx, userID)
	if err != nil {
		return leave.TrackerResponse{}, err
	}

	return leave.TrackerResponse{
		UserID:           t.UserID,
		CasualUsed:       t.CasualUsed,
		SickUsed:         t.SickUsed,
		UnannouncedCount: t.UnannouncedCount,
		TotalAccepted:    t.TotalAccepted,
	}, nil
}

// ListMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaves(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	leaves, err := s.LeaveRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}
	return responses, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	leaves, err := s.LeaveRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}
	return responses, nil
}

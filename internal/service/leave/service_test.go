package leave

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
)

type fakeLeaveRepo struct {
	rows []leave.Leave
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	l.ID = uuid.New().String()
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	f.rows = append(f.rows, l)
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return f.rows[i], nil
		}
	}
	return leave.Leave{}, leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedBy *string, decidedAt time.Time) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			f.rows[i].DecidedBy = decidedBy
			f.rows[i].DecidedAt = &decidedAt
			return nil
		}
	}
	return leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) FindAcceptedCovering(ctx context.Context, userID string, date time.Time) ([]leave.Leave, error) {
	var result []leave.Leave
	for i := range f.rows {
		l := f.rows[i]
		if l.UserID == userID && l.Status == leave.StatusAccepted && l.Covers(date) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeLeaveRepo) FindAcceptedOverlapping(ctx context.Context, userID string, start, end time.Time) ([]leave.Leave, error) {
	var result []leave.Leave
	for i := range f.rows {
		l := f.rows[i]
		if l.UserID != userID || l.Status != leave.StatusAccepted {
			continue
		}
		leaveEnd := l.StartDate
		if l.EndDate != nil {
			leaveEnd = *l.EndDate
		}
		if !l.StartDate.After(end) && !leaveEnd.Before(start) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeLeaveRepo) ListAcceptedByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	var result []leave.Leave
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Status == leave.StatusAccepted {
			result = append(result, f.rows[i])
		}
	}
	return result, nil
}

func (f *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	var result []leave.Leave
	for i := range f.rows {
		if f.rows[i].UserID == userID {
			result = append(result, f.rows[i])
		}
	}
	return result, nil
}

func (f *fakeLeaveRepo) ListPending(ctx context.Context) ([]leave.Leave, error) {
	var result []leave.Leave
	for i := range f.rows {
		if f.rows[i].Status == leave.StatusPending {
			result = append(result, f.rows[i])
		}
	}
	return result, nil
}

type fakeTrackerRepo struct {
	trackers map[string]leave.Tracker
}

func (f *fakeTrackerRepo) GetByUserID(ctx context.Context, userID string) (leave.Tracker, error) {
	t, ok := f.trackers[userID]
	if !ok {
		return leave.Tracker{}, leave.ErrTrackerNotFound
	}
	return t, nil
}

func (f *fakeTrackerRepo) Upsert(ctx context.Context, t leave.Tracker) error {
	if f.trackers == nil {
		f.trackers = make(map[string]leave.Tracker)
	}
	f.trackers[t.UserID] = t
	return nil
}

type fakePresenceRepo struct {
	attendance.AttendanceRepository
	presentUsers map[string]bool
}

func (f *fakePresenceRepo) HasEntryOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	return f.presentUsers[userID], nil
}

type fakeUserRepo struct {
	user.UserRepository
	active []user.User
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return f.active, nil
}

type fixture struct {
	svc      *LeaveServiceImpl
	leaves   *fakeLeaveRepo
	trackers *fakeTrackerRepo
	presence *fakePresenceRepo
	users    *fakeUserRepo
}

func newFixture() *fixture {
	leaves := &fakeLeaveRepo{}
	trackers := &fakeTrackerRepo{}
	presence := &fakePresenceRepo{presentUsers: map[string]bool{}}
	users := &fakeUserRepo{}

	svc := &LeaveServiceImpl{
		LeaveRepository:   leaves,
		TrackerRepository: trackers,
		attendanceRepo:    presence,
		userRepo:          users,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	return &fixture{svc: svc, leaves: leaves, trackers: trackers, presence: presence, users: users}
}

func TestRequestCreatesPendingLeave(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Request(context.Background(), "user-1", leave.CreateLeaveRequest{
		Type:      "casual",
		StartDate: "2026-03-10",
		Reason:    "family event",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "casual", result.Type)
	assert.Len(t, f.leaves.rows, 1)
}

func TestRequestRejectsOverlappingAccepted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	end := mustDay("2026-03-12")
	_, err := f.leaves.Create(ctx, leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeCasual,
		StartDate: mustDay("2026-03-10"),
		EndDate:   &end,
		Status:    leave.StatusAccepted,
	})
	require.NoError(t, err)

	_, err = f.svc.Request(ctx, "user-1", leave.CreateLeaveRequest{
		Type:      "sick",
		StartDate: "2026-03-12",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// A range that only touches other days is fine.
	_, err = f.svc.Request(ctx, "user-1", leave.CreateLeaveRequest{
		Type:      "sick",
		StartDate: "2026-03-13",
	})
	assert.NoError(t, err)
}

func TestDecideAcceptUpdatesTracker(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	end := mustDay("2026-03-11")
	created, err := f.leaves.Create(ctx, leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeCasual,
		StartDate: mustDay("2026-03-10"),
		EndDate:   &end,
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	result, notice, err := f.svc.Decide(ctx, created.ID, leave.DecideLeaveRequest{Outcome: "accepted"}, "ttf-1")
	require.NoError(t, err)

	assert.Equal(t, "accepted", result.Status)
	require.NotNil(t, notice)
	assert.Equal(t, leave.StatusAccepted, notice.Leave.Status)

	tracker, err := f.svc.GetTracker(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, tracker.CasualUsed)
	assert.Equal(t, 2.0, tracker.TotalAccepted)
	assert.Equal(t, 0, tracker.UnannouncedCount)
}

func TestDecideRejectSkipsTracker(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.leaves.Create(ctx, leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeSick,
		StartDate: mustDay("2026-03-10"),
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	result, notice, err := f.svc.Decide(ctx, created.ID, leave.DecideLeaveRequest{Outcome: "rejected"}, "ttf-1")
	require.NoError(t, err)

	assert.Equal(t, "rejected", result.Status)
	require.NotNil(t, notice)

	_, err = f.svc.GetTracker(ctx, "user-1")
	assert.ErrorIs(t, err, leave.ErrTrackerNotFound)
}

func TestDecideTerminalStateGuard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.leaves.Create(ctx, leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeSick,
		StartDate: mustDay("2026-03-10"),
		Status:    leave.StatusAccepted,
	})
	require.NoError(t, err)

	_, _, err = f.svc.Decide(ctx, created.ID, leave.DecideLeaveRequest{Outcome: "rejected"}, "ttf-1")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestDecideInvalidOutcome(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.Decide(context.Background(), "whatever", leave.DecideLeaveRequest{Outcome: "maybe"}, "ttf-1")
	assert.ErrorIs(t, err, leave.ErrInvalidOutcome)
}

func TestHasActiveLeaveOnBoundaries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	end := mustDay("2026-03-12")
	_, err := f.leaves.Create(ctx, leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeCasual,
		StartDate: mustDay("2026-03-10"),
		EndDate:   &end,
		Status:    leave.StatusAccepted,
	})
	require.NoError(t, err)

	for date, want := range map[string]bool{
		"2026-03-09": false,
		"2026-03-10": true,
		"2026-03-12": true,
		"2026-03-13": false,
	} {
		got, err := f.svc.HasActiveLeaveOn(ctx, "user-1", mustDay(date))
		require.NoError(t, err)
		assert.Equal(t, want, got, date)
	}
}

func TestSweepCreatesUnannouncedLeave(t *testing.T) {
	f := newFixture()
	f.users.active = []user.User{
		{ID: "absent-1", Name: "Absent One", Email: "absent@example.com", IsActive: true},
		{ID: "present-1", Name: "Present One", Email: "present@example.com", IsActive: true},
	}
	f.presence.presentUsers["present-1"] = true

	notices, err := f.svc.RunUnannouncedSweep(context.Background())
	require.NoError(t, err)

	require.Len(t, notices, 1)
	assert.Equal(t, "absent-1", notices[0].Leave.UserID)
	assert.Equal(t, leave.TypeUnannounced, notices[0].Leave.Type)
	assert.Equal(t, leave.StatusAccepted, notices[0].Leave.Status)
	assert.Equal(t, "absent@example.com", notices[0].UserEmail)

	tracker, err := f.svc.GetTracker(context.Background(), "absent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.UnannouncedCount)
	assert.Equal(t, 1.0, tracker.TotalAccepted)
}

func TestSweepIdempotentPerDay(t *testing.T) {
	f := newFixture()
	f.users.active = []user.User{
		{ID: "absent-1", Name: "Absent One", Email: "absent@example.com", IsActive: true},
	}

	first, err := f.svc.RunUnannouncedSweep(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.svc.RunUnannouncedSweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)

	assert.Len(t, f.leaves.rows, 1)

	tracker, err := f.svc.GetTracker(context.Background(), "absent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.UnannouncedCount)
}

func TestSweepSkipsUsersOnLeave(t *testing.T) {
	f := newFixture()
	f.users.active = []user.User{
		{ID: "user-1", Name: "On Leave", Email: "leave@example.com", IsActive: true},
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	_, err := f.leaves.Create(context.Background(), leave.Leave{
		UserID:    "user-1",
		Type:      leave.TypeCasual,
		StartDate: today,
		Status:    leave.StatusAccepted,
	})
	require.NoError(t, err)

	notices, err := f.svc.RunUnannouncedSweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Len(t, f.leaves.rows, 1)
}

func TestTrackerMatchesFullRecompute(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	days := []string{"2026-01-05", "2026-01-12", "2026-02-02"}
	types := []leave.Type{leave.TypeCasual, leave.TypeSick, leave.TypeCasual}

	for i := range days {
		created, err := f.leaves.Create(ctx, leave.Leave{
			UserID:    "user-1",
			Type:      types[i],
			StartDate: mustDay(days[i]),
			Status:    leave.StatusPending,
		})
		require.NoError(t, err)

		_, _, err = f.svc.Decide(ctx, created.ID, leave.DecideLeaveRequest{Outcome: "accepted"}, "ttf-1")
		require.NoError(t, err)
	}

	tracker, err := f.svc.GetTracker(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, tracker.CasualUsed)
	assert.Equal(t, 1.0, tracker.SickUsed)
	assert.Equal(t, 3.0, tracker.TotalAccepted)
}

func mustDay(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
)

// fakeAttendanceRepo keeps rows in memory with the same visible semantics
// as the SQL repository.
type fakeAttendanceRepo struct {
	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = uuid.New().String()
	att.CreatedAt = time.Now().UTC()
	att.UpdatedAt = att.CreatedAt
	f.rows = append(f.rows, att)
	return att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	for i := range f.rows {
		if f.rows[i].ID == att.ID {
			f.rows[i].OutTime = att.OutTime
			f.rows[i].TotalHours = att.TotalHours
			f.rows[i].IsFirstEntry = att.IsFirstEntry
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetOpenEntry(ctx context.Context, userID string, day time.Time) (*attendance.Attendance, error) {
	for i := range f.rows {
		r := f.rows[i]
		if r.UserID == userID && r.CheckinDate.Equal(day) && r.OutTime == nil {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) HasEntryOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].CheckinDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) HasFirstEntryOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].CheckinDate.Equal(day) && f.rows[i].IsFirstEntry {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) GetEarliestEntryOn(ctx context.Context, userID string, day time.Time) (*attendance.Attendance, error) {
	var earliest *attendance.Attendance
	for i := range f.rows {
		r := f.rows[i]
		if r.UserID != userID || !r.CheckinDate.Equal(day) {
			continue
		}
		if earliest == nil || r.InTime.Before(earliest.InTime) {
			copied := r
			earliest = &copied
		}
	}
	return earliest, nil
}

func (f *fakeAttendanceRepo) GetLastUnclosedFirstEntry(ctx context.Context, userID string, excludeDay time.Time) (*attendance.Attendance, error) {
	var latest *attendance.Attendance
	for i := range f.rows {
		r := f.rows[i]
		if r.UserID != userID || r.CheckinDate.Equal(excludeDay) || !r.IsFirstEntry || r.TotalHours != nil {
			continue
		}
		if latest == nil || r.CheckinDate.After(latest.CheckinDate) {
			copied := r
			latest = &copied
		}
	}
	return latest, nil
}

func (f *fakeAttendanceRepo) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for i := range f.rows {
		r := f.rows[i]
		if r.UserID == userID && !r.CheckinDate.Before(from) && !r.CheckinDate.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	var result []attendance.Attendance
	for i := range f.rows {
		r := f.rows[i]
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func newTestService(repo *fakeAttendanceRepo) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{AttendanceRepository: repo}
}

func firstEntryCount(repo *fakeAttendanceRepo, userID string, day time.Time) int {
	count := 0
	for i := range repo.rows {
		if repo.rows[i].UserID == userID && repo.rows[i].CheckinDate.Equal(day) && repo.rows[i].IsFirstEntry {
			count++
		}
	}
	return count
}

func TestCheckInFlagsFirstEntry(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)

	result, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.True(t, result.IsFirstEntry)
	assert.Equal(t, 1, firstEntryCount(repo, "user-1", today()))
}

func TestCheckInRejectsOpenSession(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)

	_, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, repo.rows, 1)
}

func TestCheckInSecondSessionKeepsSingleFirstEntry(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Len(t, repo.rows, 2)
	assert.Equal(t, 1, firstEntryCount(repo, "user-1", today()))
}

func TestMarkFirstEntryOfDayIdempotent(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()
	day := today()

	_, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.MarkFirstEntryOfDay(ctx, "user-1", day))
	require.NoError(t, svc.MarkFirstEntryOfDay(ctx, "user-1", day))

	assert.Equal(t, 1, firstEntryCount(repo, "user-1", day))
}

func TestCheckOut(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	result, err := svc.CheckOut(ctx, "user-1")
	require.NoError(t, err)

	require.NotNil(t, result.OutTime)
	require.NotNil(t, result.TotalHours)
	assert.GreaterOrEqual(t, *result.TotalHours, 0.0)

	_, err = svc.CheckOut(ctx, "user-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{})

	_, err := svc.CheckOut(context.Background(), "user-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestBackfillSetsDefaultHours(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	yesterday := today().AddDate(0, 0, -1)
	stale, err := repo.Create(ctx, attendance.Attendance{
		UserID:       "user-1",
		CheckinDate:  yesterday,
		InTime:       yesterday.Add(9 * time.Hour),
		IsFirstEntry: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.BackfillMissingCheckout(ctx, "user-1", today()))

	for i := range repo.rows {
		if repo.rows[i].ID == stale.ID {
			require.NotNil(t, repo.rows[i].TotalHours)
			assert.Equal(t, attendance.DefaultBackfillHours, *repo.rows[i].TotalHours)
		}
	}
}

func TestBackfillNeverOverwritesSetHours(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	worked := 7.5
	yesterday := today().AddDate(0, 0, -1)
	closed, err := repo.Create(ctx, attendance.Attendance{
		UserID:       "user-1",
		CheckinDate:  yesterday,
		InTime:       yesterday.Add(9 * time.Hour),
		IsFirstEntry: true,
		TotalHours:   &worked,
	})
	require.NoError(t, err)

	require.NoError(t, svc.BackfillMissingCheckout(ctx, "user-1", today()))

	for i := range repo.rows {
		if repo.rows[i].ID == closed.ID {
			require.NotNil(t, repo.rows[i].TotalHours)
			assert.Equal(t, worked, *repo.rows[i].TotalHours)
		}
	}
}

func TestBackfillSkipsTargetDay(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo)
	ctx := context.Background()
	day := today()

	open, err := repo.Create(ctx, attendance.Attendance{
		UserID:       "user-1",
		CheckinDate:  day,
		InTime:       time.Now().UTC(),
		IsFirstEntry: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.BackfillMissingCheckout(ctx, "user-1", day))

	for i := range repo.rows {
		if repo.rows[i].ID == open.ID {
			assert.Nil(t, repo.rows[i].TotalHours)
		}
	}
}

package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows []attendance.Attendance
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

type fakeUserRepo struct {
	user.UserRepository
	active []user.User
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return f.active, nil
}

func hours(v float64) *float64 { return &v }

func at(date string, clock string) attendance.Attendance {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	in, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		panic(err)
	}
	return attendance.Attendance{UserID: "user-1", CheckinDate: day, InTime: in}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := summarize(nil)

	assert.Equal(t, 0.0, summary.TotalHours)
	assert.Equal(t, 0.0, summary.AverageHours)
	assert.Equal(t, "", summary.AverageCheckInTime)
}

func TestSummarizeTotalsAndAverages(t *testing.T) {
	first := at("2026-02-03", "09:00")
	first.TotalHours = hours(5)
	second := at("2026-02-04", "10:00")
	second.TotalHours = hours(3)

	summary := summarize([]attendance.Attendance{first, second})

	assert.Equal(t, 8.0, summary.TotalHours)
	assert.Equal(t, 4.0, summary.AverageHours)
	assert.Equal(t, "09:30", summary.AverageCheckInTime)
}

func TestSummarizeUnsetHoursStillCountInTime(t *testing.T) {
	first := at("2026-02-03", "08:00")
	first.TotalHours = hours(6)
	second := at("2026-02-04", "10:00") // open session, hours unset

	summary := summarize([]attendance.Attendance{first, second})

	assert.Equal(t, 6.0, summary.TotalHours)
	assert.Equal(t, 3.0, summary.AverageHours)
	assert.Equal(t, "09:00", summary.AverageCheckInTime)
}

func newTestService(attRepo *fakeAttendanceRepo, userRepo *fakeUserRepo, now time.Time) *ReportServiceImpl {
	return &ReportServiceImpl{
		attendanceRepo: attRepo,
		userRepo:       userRepo,
		now:            func() time.Time { return now },
	}
}

func TestSixMonthCSVShape(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	userRepo := &fakeUserRepo{active: []user.User{
		{ID: "user-1", Email: "one@example.com"},
		{ID: "user-2", Email: "two@example.com"},
	}}
	now := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	svc := newTestService(attRepo, userRepo, now)

	data, err := svc.SixMonthCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Two header rows plus one row per user.
	require.Len(t, records, 4)
	for _, record := range records {
		assert.Len(t, record, 1+6*3)
	}

	// Months descend from the last completed one.
	assert.Equal(t, "June 2026", records[0][1])
	assert.Equal(t, "May 2026", records[0][4])
	assert.Equal(t, "January 2026", records[0][16])

	assert.Equal(t, "User email", records[1][0])
	assert.Equal(t, "Total hours", records[1][1])
	assert.Equal(t, "Average hours", records[1][2])
	assert.Equal(t, "Average in time", records[1][3])

	assert.Equal(t, "one@example.com", records[2][0])
	assert.Equal(t, "two@example.com", records[3][0])
}

func TestSixMonthCSVEmptyMonthsAreBlank(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	userRepo := &fakeUserRepo{active: []user.User{{ID: "user-1", Email: "one@example.com"}}}
	now := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	svc := newTestService(attRepo, userRepo, now)

	data, err := svc.SixMonthCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	row := records[2]
	for month := 0; month < 6; month++ {
		assert.Equal(t, "0.00", row[1+month*3])
		assert.Equal(t, "0.00", row[2+month*3])
		assert.Equal(t, "", row[3+month*3])
	}
}

func TestSixMonthCSVDistinctMonthBlocks(t *testing.T) {
	// June and May carry different data; each block must reflect its own
	// month rather than repeating a neighbour's.
	attRepo := &fakeAttendanceRepo{}
	june := at("2026-06-10", "09:00")
	june.TotalHours = hours(8)
	mayFirst := at("2026-05-05", "10:00")
	mayFirst.TotalHours = hours(4)
	maySecond := at("2026-05-06", "10:00")
	maySecond.TotalHours = hours(2)
	attRepo.rows = []attendance.Attendance{june, mayFirst, maySecond}

	userRepo := &fakeUserRepo{active: []user.User{{ID: "user-1", Email: "one@example.com"}}}
	now := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	svc := newTestService(attRepo, userRepo, now)

	data, err := svc.SixMonthCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	row := records[2]
	// June block.
	assert.Equal(t, "8.00", row[1])
	assert.Equal(t, "8.00", row[2])
	assert.Equal(t, "09:00", row[3])
	// May block.
	assert.Equal(t, "6.00", row[4])
	assert.Equal(t, "3.00", row[5])
	assert.Equal(t, "10:00", row[6])
	// April block is empty.
	assert.Equal(t, "0.00", row[7])
	assert.Equal(t, "", row[9])
}

func TestMonthlySummaryRange(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	inRange := at("2026-02-10", "09:00")
	inRange.TotalHours = hours(5)
	outOfRange := at("2026-03-01", "09:00")
	outOfRange.TotalHours = hours(7)
	attRepo.rows = []attendance.Attendance{inRange, outOfRange}

	svc := newTestService(attRepo, &fakeUserRepo{}, time.Now().UTC())

	summary, err := svc.MonthlySummary(context.Background(), "user-1",
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 5.0, summary.TotalHours)
	assert.Equal(t, 5.0, summary.AverageHours)
}

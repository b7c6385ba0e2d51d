package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, user_id, checkin_date, in_time, out_time, is_first_entry, total_hours, parent_id, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.CheckinDate,
		&a.InTime,
		&a.OutTime,
		&a.IsFirstEntry,
		&a.TotalHours,
		&a.ParentID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, checkin_date, in_time, out_time, is_first_entry, total_hours, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.UserID,
		att.CheckinDate,
		att.InTime,
		att.OutTime,
		att.IsFirstEntry,
		att.TotalHours,
		att.ParentID,
	))
	if err != nil {
		return attendance.Attendance{}, err
	}

	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET out_time = $1, total_hours = $2, is_first_entry = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, att.OutTime, att.TotalHours, att.IsFirstEntry, att.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetOpenEntry implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenEntry(ctx context.Context, userID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND checkin_date = $2 AND out_time IS NULL
		ORDER BY in_time DESC
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// HasEntryOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasEntryOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM attendances WHERE user_id = $1 AND checkin_date = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, day).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// HasFirstEntryOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasFirstEntryOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM attendances WHERE user_id = $1 AND checkin_date = $2 AND is_first_entry = true)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, day).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetEarliestEntryOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetEarliestEntryOn(ctx context.Context, userID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND checkin_date = $2
		ORDER BY in_time ASC
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetLastUnclosedFirstEntry implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetLastUnclosedFirstEntry(ctx context.Context, userID string, excludeDay time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND checkin_date <> $2
		  AND is_first_entry = true
		  AND total_hours IS NULL
		ORDER BY checkin_date DESC
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, excludeDay))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND checkin_date BETWEEN $2 AND $3
		ORDER BY checkin_date ASC, in_time ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil && *filter.UserID != "" {
		where += fmt.Sprintf(" AND a.user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND a.checkin_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND a.checkin_date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM attendances a` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.user_id, a.checkin_date, a.in_time, a.out_time,
		       a.is_first_entry, a.total_hours, a.parent_id, a.created_at, a.updated_at,
		       u.name, u.email
		FROM attendances a
		JOIN users u ON u.id = a.user_id` + where + fmt.Sprintf(`
		ORDER BY a.checkin_date DESC, a.in_time DESC
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.CheckinDate,
			&a.InTime,
			&a.OutTime,
			&a.IsFirstEntry,
			&a.TotalHours,
			&a.ParentID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.UserName,
			&a.UserEmail,
		)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var list []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

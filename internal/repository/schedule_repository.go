// Package repository contains the data access layer.  Each file owns the row
// struct, sentinel errors and SQL for one table, following the same shape
// throughout: a thin struct around *sql.DB, ExecContext/QueryRowContext, and
// a re-select after INSERT to pick up DB-default columns.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sihul/sihul-backend/internal/schedule"
)

// ErrScheduleNotFound indicates that a schedule entry was not located.
var ErrScheduleNotFound = errors.New("schedule entry not found")

// ScheduleRepo manages persistence for schedule entries and implements
// schedule.EntryStore for the validator and the fusion synchronizer.
// Candidate listings only return APPROVED rows: pending space-request
// entries do not block a room until they are approved.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// DB exposes the underlying handle for callers that need to span a
// transaction across repositories.
func (r *ScheduleRepo) DB() *sql.DB { return r.db }

const scheduleColumns = `s.id, s.group_id, g.name, s.subject_id, s.teacher_id, s.room_id,
       s.day, s.starts_at, s.ends_at, s.headcount, s.status`

const scheduleFrom = ` FROM schedules s JOIN student_groups g ON g.id = s.group_id`

func scanEntry(row interface{ Scan(...any) error }) (*schedule.Entry, error) {
	var (
		e         schedule.Entry
		teacherID sql.NullInt64
		headcount sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.GroupID, &e.GroupName, &e.SubjectID, &teacherID,
		&e.RoomID, &e.Day, &e.StartsAt, &e.EndsAt, &headcount, &e.Status)
	if err != nil {
		return nil, err
	}
	if teacherID.Valid {
		v := uint64(teacherID.Int64)
		e.TeacherID = &v
	}
	if headcount.Valid {
		v := uint32(headcount.Int64)
		e.Headcount = &v
	}
	return &e, nil
}

func (r *ScheduleRepo) queryEntries(ctx context.Context, q string, args ...any) ([]schedule.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new schedule entry.  This is the bare persistence
// primitive: it runs no conflict checks itself.  The normal write path
// calls schedule.Validator first and schedule.Synchronizer after; the bulk
// seed path calls Create directly, bypassing validation by design.
func (r *ScheduleRepo) Create(ctx context.Context, e *schedule.Entry) error {
	const q = `INSERT INTO schedules (group_id, subject_id, teacher_id, room_id, day, starts_at, ends_at, headcount, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := e.Status
	if status == "" {
		status = "APPROVED"
	}
	res, err := r.db.ExecContext(ctx, q, e.GroupID, e.SubjectID, nullableID(e.TeacherID),
		e.RoomID, e.Day, e.StartsAt, e.EndsAt, nullableCount(e.Headcount), status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	fresh, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if fresh != nil {
		*e = *fresh
	}
	return nil
}

// Update rewrites every mutable column of an existing entry.
func (r *ScheduleRepo) Update(ctx context.Context, e *schedule.Entry) error {
	const q = `UPDATE schedules
               SET group_id = ?, subject_id = ?, teacher_id = ?, room_id = ?, day = ?,
                   starts_at = ?, ends_at = ?, headcount = ?, status = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, e.GroupID, e.SubjectID, nullableID(e.TeacherID),
		e.RoomID, e.Day, e.StartsAt, e.EndsAt, nullableCount(e.Headcount), e.Status, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with identical values; distinguish from missing.
		if fresh, err := r.GetByID(ctx, e.ID); err != nil || fresh == nil {
			if err != nil {
				return err
			}
			return ErrScheduleNotFound
		}
	}
	return nil
}

// Delete removes a schedule entry.  The fused record that may reference it
// is left untouched; see the fusion notes in DESIGN.md.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// GetByID fetches one entry, returning (nil, nil) when the id is unknown so
// the validator can treat a vanished previous version as a plain create.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*schedule.Entry, error) {
	q := `SELECT ` + scheduleColumns + scheduleFrom + ` WHERE s.id = ?`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// ListByRoomAndDay returns the approved entries occupying a room on a given
// day, excluding excludeID, in ascending id order.
func (r *ScheduleRepo) ListByRoomAndDay(ctx context.Context, roomID uint64, day string, excludeID uint64) ([]schedule.Entry, error) {
	q := `SELECT ` + scheduleColumns + scheduleFrom + `
          WHERE s.room_id = ? AND s.day = ? AND s.status = 'APPROVED' AND s.id <> ?
          ORDER BY s.id ASC`
	return r.queryEntries(ctx, q, roomID, day, excludeID)
}

// ListSameClassInRoom returns the approved entries in e's room sharing e's
// class signature, excluding excludeID, in ascending id order.
func (r *ScheduleRepo) ListSameClassInRoom(ctx context.Context, e *schedule.Entry, excludeID uint64) ([]schedule.Entry, error) {
	q := `SELECT ` + scheduleColumns + scheduleFrom + `
          WHERE s.room_id = ? AND s.day = ? AND s.subject_id = ? AND s.teacher_id <=> ?
            AND s.starts_at = ? AND s.ends_at = ?
            AND s.status = 'APPROVED' AND s.id <> ?
          ORDER BY s.id ASC`
	return r.queryEntries(ctx, q, e.RoomID, e.Day, e.SubjectID, nullableID(e.TeacherID),
		e.StartsAt, e.EndsAt, excludeID)
}

// ListBySignatureForGroups returns every approved entry matching e's class
// signature, in any room, whose group is one of groupIDs.
func (r *ScheduleRepo) ListBySignatureForGroups(ctx context.Context, e *schedule.Entry, groupIDs []uint64) ([]schedule.Entry, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	q := `SELECT ` + scheduleColumns + scheduleFrom + `
          WHERE s.day = ? AND s.subject_id = ? AND s.teacher_id <=> ?
            AND s.starts_at = ? AND s.ends_at = ?
            AND s.status = 'APPROVED'
            AND s.group_id IN (` + placeholders(len(groupIDs)) + `)
          ORDER BY s.id ASC`
	args := []any{e.Day, e.SubjectID, nullableID(e.TeacherID), e.StartsAt, e.EndsAt}
	for _, g := range groupIDs {
		args = append(args, g)
	}
	return r.queryEntries(ctx, q, args...)
}

// ListByGroup returns every entry for one student group, any status,
// ordered by day then start time for timetable rendering.
func (r *ScheduleRepo) ListByGroup(ctx context.Context, groupID uint64) ([]schedule.Entry, error) {
	q := `SELECT ` + scheduleColumns + scheduleFrom + `
          WHERE s.group_id = ? ORDER BY s.day ASC, s.starts_at ASC`
	return r.queryEntries(ctx, q, groupID)
}

// ListByRoom returns every entry held in one room, any status.
func (r *ScheduleRepo) ListByRoom(ctx context.Context, roomID uint64) ([]schedule.Entry, error) {
	q := `SELECT ` + scheduleColumns + scheduleFrom + `
          WHERE s.room_id = ? ORDER BY s.day ASC, s.starts_at ASC`
	return r.queryEntries(ctx, q, roomID)
}

// nullableID converts an optional reference into a driver-friendly value.
func nullableID(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableCount(v *uint32) any {
	if v == nil {
		return nil
	}
	return *v
}

// placeholders builds "?, ?, ?" for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

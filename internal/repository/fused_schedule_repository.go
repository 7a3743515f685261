package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sihul/sihul-backend/internal/schedule"
)

// FusedScheduleRepo persists the derived fused-schedule records and
// implements schedule.FusionStore.  Nothing but the fusion synchronizer
// writes to this table.
type FusedScheduleRepo struct {
	db *sql.DB
}

// NewFusedScheduleRepo constructs a FusedScheduleRepo with the given handle.
func NewFusedScheduleRepo(db *sql.DB) *FusedScheduleRepo {
	return &FusedScheduleRepo{db: db}
}

const fusedColumns = `id, group1_id, group2_id, group3_id, subject_id, teacher_id,
       room_id, day, starts_at, ends_at, headcount, comment`

func scanFused(row interface{ Scan(...any) error }) (*schedule.FusedEntry, error) {
	var (
		f         schedule.FusedEntry
		group3    sql.NullInt64
		teacherID sql.NullInt64
	)
	err := row.Scan(&f.ID, &f.Group1ID, &f.Group2ID, &group3, &f.SubjectID, &teacherID,
		&f.RoomID, &f.Day, &f.StartsAt, &f.EndsAt, &f.Headcount, &f.Comment)
	if err != nil {
		return nil, err
	}
	if group3.Valid {
		v := uint64(group3.Int64)
		f.Group3ID = &v
	}
	if teacherID.Valid {
		v := uint64(teacherID.Int64)
		f.TeacherID = &v
	}
	return &f, nil
}

// FindBySignature locates the fused record matching e's class signature
// whose group slots intersect groupIDs, or (nil, nil) when none exists.
func (r *FusedScheduleRepo) FindBySignature(ctx context.Context, e *schedule.Entry, groupIDs []uint64) (*schedule.FusedEntry, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	in := placeholders(len(groupIDs))
	q := `SELECT ` + fusedColumns + ` FROM fused_schedules
          WHERE subject_id = ? AND teacher_id <=> ? AND day = ?
            AND starts_at = ? AND ends_at = ?
            AND (group1_id IN (` + in + `) OR group2_id IN (` + in + `) OR group3_id IN (` + in + `))
          ORDER BY id ASC LIMIT 1`
	args := []any{e.SubjectID, nullableID(e.TeacherID), e.Day, e.StartsAt, e.EndsAt}
	for i := 0; i < 3; i++ {
		for _, g := range groupIDs {
			args = append(args, g)
		}
	}
	f, err := scanFused(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

// Create inserts a new fused record and assigns its generated id.
func (r *FusedScheduleRepo) Create(ctx context.Context, f *schedule.FusedEntry) error {
	const q = `INSERT INTO fused_schedules
               (group1_id, group2_id, group3_id, subject_id, teacher_id, room_id, day, starts_at, ends_at, headcount, comment)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.Group1ID, f.Group2ID, nullableID(f.Group3ID),
		f.SubjectID, nullableID(f.TeacherID), f.RoomID, f.Day, f.StartsAt, f.EndsAt,
		f.Headcount, f.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// Update rewrites the group slots, headcount and comment of a fused record.
func (r *FusedScheduleRepo) Update(ctx context.Context, f *schedule.FusedEntry) error {
	const q = `UPDATE fused_schedules
               SET group1_id = ?, group2_id = ?, group3_id = ?, headcount = ?, comment = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, f.Group1ID, f.Group2ID, nullableID(f.Group3ID),
		f.Headcount, f.Comment, f.ID)
	return err
}

// List returns every fused record, newest first, for the read-only API.
func (r *FusedScheduleRepo) List(ctx context.Context) ([]schedule.FusedEntry, error) {
	q := `SELECT ` + fusedColumns + ` FROM fused_schedules ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.FusedEntry
	for rows.Next() {
		f, err := scanFused(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByGroup returns the fused records any of whose slots hold groupID.
func (r *FusedScheduleRepo) ListByGroup(ctx context.Context, groupID uint64) ([]schedule.FusedEntry, error) {
	q := `SELECT ` + fusedColumns + ` FROM fused_schedules
          WHERE group1_id = ? OR group2_id = ? OR group3_id = ?
          ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, groupID, groupID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.FusedEntry
	for rows.Next() {
		f, err := scanFused(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// StudentGroup is a cohort of students enrolled together in a program.
// Schedule entries and the fused-record group slots reference this table.
type StudentGroup struct {
	ID        uint64 `json:"id"`
	ProgramID uint64 `json:"program_id"`
	Name      string `json:"name"`
	Term      string `json:"term"` // e.g. "2026-1"
}

// ErrGroupNotFound indicates that a student group was not located.
var ErrGroupNotFound = errors.New("student group not found")

// GroupRepo manages persistence for student groups.
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo constructs a GroupRepo with the given DB handle.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create inserts a group and assigns its generated id.
func (r *GroupRepo) Create(ctx context.Context, g *StudentGroup) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO student_groups (program_id, name, term) VALUES (?, ?, ?)`,
		g.ProgramID, g.Name, g.Term)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateName
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches one group or ErrGroupNotFound.
func (r *GroupRepo) GetByID(ctx context.Context, id uint64) (*StudentGroup, error) {
	var g StudentGroup
	err := r.db.QueryRowContext(ctx,
		`SELECT id, program_id, name, term FROM student_groups WHERE id = ?`, id).
		Scan(&g.ID, &g.ProgramID, &g.Name, &g.Term)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByProgram returns the groups of one program ordered by name.
func (r *GroupRepo) ListByProgram(ctx context.Context, programID uint64) ([]StudentGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, program_id, name, term FROM student_groups WHERE program_id = ? ORDER BY name ASC`,
		programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StudentGroup
	for rows.Next() {
		var g StudentGroup
		if err := rows.Scan(&g.ID, &g.ProgramID, &g.Name, &g.Term); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a group's attributes.
func (r *GroupRepo) Update(ctx context.Context, g *StudentGroup) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE student_groups SET program_id = ?, name = ?, term = ? WHERE id = ?`,
		g.ProgramID, g.Name, g.Term, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a group unless schedule entries still reference it.
func (r *GroupRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE group_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGroupNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Subject is a course within a degree program.
type Subject struct {
	ID        uint64 `json:"id"`
	ProgramID uint64 `json:"program_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Credits   uint32 `json:"credits"`
}

// ErrSubjectNotFound indicates that a subject was not located.
var ErrSubjectNotFound = errors.New("subject not found")

// SubjectRepo manages persistence for subjects.
type SubjectRepo struct {
	db *sql.DB
}

// NewSubjectRepo constructs a SubjectRepo with the given DB handle.
func NewSubjectRepo(db *sql.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

// Create inserts a subject and assigns its generated id.
func (r *SubjectRepo) Create(ctx context.Context, s *Subject) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (program_id, code, name, credits) VALUES (?, ?, ?, ?)`,
		s.ProgramID, s.Code, s.Name, s.Credits)
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
	s.ID = uint64(id)
	return nil
}

// GetByID fetches one subject or ErrSubjectNotFound.
func (r *SubjectRepo) GetByID(ctx context.Context, id uint64) (*Subject, error) {
	var s Subject
	err := r.db.QueryRowContext(ctx,
		`SELECT id, program_id, code, name, credits FROM subjects WHERE id = ?`, id).
		Scan(&s.ID, &s.ProgramID, &s.Code, &s.Name, &s.Credits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByProgram returns the subjects of one program ordered by code.
func (r *SubjectRepo) ListByProgram(ctx context.Context, programID uint64) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, program_id, code, name, credits FROM subjects WHERE program_id = ? ORDER BY code ASC`,
		programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.ProgramID, &s.Code, &s.Name, &s.Credits); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a subject's attributes.
func (r *SubjectRepo) Update(ctx context.Context, s *Subject) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subjects SET program_id = ?, code = ?, name = ?, credits = ? WHERE id = ?`,
		s.ProgramID, s.Code, s.Name, s.Credits, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a subject unless schedule entries still reference it.
func (r *SubjectRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE subject_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

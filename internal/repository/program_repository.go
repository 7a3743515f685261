package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Program is a degree program offered by a faculty.
type Program struct {
	ID        uint64 `json:"id"`
	FacultyID uint64 `json:"faculty_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}

// ErrProgramNotFound indicates that a program was not located.
var ErrProgramNotFound = errors.New("program not found")

// ProgramRepo manages persistence for degree programs.
type ProgramRepo struct {
	db *sql.DB
}

// NewProgramRepo constructs a ProgramRepo with the given DB handle.
func NewProgramRepo(db *sql.DB) *ProgramRepo {
	return &ProgramRepo{db: db}
}

// Create inserts a program and assigns its generated id.
func (r *ProgramRepo) Create(ctx context.Context, p *Program) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO programs (faculty_id, name, code) VALUES (?, ?, ?)`,
		p.FacultyID, p.Name, p.Code)
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
	p.ID = uint64(id)
	return nil
}

// GetByID fetches one program or ErrProgramNotFound.
func (r *ProgramRepo) GetByID(ctx context.Context, id uint64) (*Program, error) {
	var p Program
	err := r.db.QueryRowContext(ctx,
		`SELECT id, faculty_id, name, code FROM programs WHERE id = ?`, id).
		Scan(&p.ID, &p.FacultyID, &p.Name, &p.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByFaculty returns the programs of one faculty ordered by name.
func (r *ProgramRepo) ListByFaculty(ctx context.Context, facultyID uint64) ([]Program, error) {
	return r.list(ctx,
		`SELECT id, faculty_id, name, code FROM programs WHERE faculty_id = ? ORDER BY name ASC`,
		facultyID)
}

// List returns every program ordered by name.
func (r *ProgramRepo) List(ctx context.Context) ([]Program, error) {
	return r.list(ctx, `SELECT id, faculty_id, name, code FROM programs ORDER BY name ASC`)
}

func (r *ProgramRepo) list(ctx context.Context, q string, args ...any) ([]Program, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.FacultyID, &p.Name, &p.Code); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a program's attributes.
func (r *ProgramRepo) Update(ctx context.Context, p *Program) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE programs SET faculty_id = ?, name = ?, code = ? WHERE id = ?`,
		p.FacultyID, p.Name, p.Code, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a program unless subjects or groups still reference it.
func (r *ProgramRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM subjects WHERE program_id = ?) +
                (SELECT COUNT(*) FROM student_groups WHERE program_id = ?)`,
		id, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProgramNotFound
	}
	return nil
}

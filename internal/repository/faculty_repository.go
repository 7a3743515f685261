package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Faculty is a top-level academic unit.  Programs hang off faculties.
type Faculty struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ErrFacultyNotFound indicates that a faculty was not located.
var ErrFacultyNotFound = errors.New("faculty not found")

// ErrDuplicateName signals a unique-name violation on catalog tables.
var ErrDuplicateName = errors.New("name already exists")

// FacultyRepo manages persistence for faculties.
type FacultyRepo struct {
	db *sql.DB
}

// NewFacultyRepo constructs a FacultyRepo with the given DB handle.
func NewFacultyRepo(db *sql.DB) *FacultyRepo {
	return &FacultyRepo{db: db}
}

// Create inserts a faculty, mapping MySQL duplicate-key errors (1062) to
// ErrDuplicateName.
func (r *FacultyRepo) Create(ctx context.Context, f *Faculty) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO faculties (name) VALUES (?)`, f.Name)
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
	f.ID = uint64(id)
	return nil
}

// GetByID fetches one faculty or ErrFacultyNotFound.
func (r *FacultyRepo) GetByID(ctx context.Context, id uint64) (*Faculty, error) {
	var f Faculty
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM faculties WHERE id = ?`, id).
		Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacultyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all faculties ordered by name.
func (r *FacultyRepo) List(ctx context.Context) ([]Faculty, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM faculties ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Faculty
	for rows.Next() {
		var f Faculty
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a faculty.
func (r *FacultyRepo) Update(ctx context.Context, f *Faculty) error {
	res, err := r.db.ExecContext(ctx, `UPDATE faculties SET name = ? WHERE id = ?`, f.Name, f.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, f.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a faculty unless programs still reference it.
func (r *FacultyRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM programs WHERE faculty_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM faculties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFacultyNotFound
	}
	return nil
}

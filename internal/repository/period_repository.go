package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// AcademicPeriod is a semester (year + term).  At most one period is active
// at a time; activation is done in a transaction that deactivates the rest.
type AcademicPeriod struct {
	ID       uint64 `json:"id"`
	Year     uint32 `json:"year"`
	Term     uint32 `json:"term"` // 1 or 2
	StartsOn string `json:"starts_on"`
	EndsOn   string `json:"ends_on"`
	IsActive bool   `json:"is_active"`
}

// ErrPeriodNotFound indicates that an academic period was not located.
var ErrPeriodNotFound = errors.New("academic period not found")

// PeriodRepo manages persistence for academic periods.
type PeriodRepo struct {
	db *sql.DB
}

// NewPeriodRepo constructs a PeriodRepo with the given DB handle.
func NewPeriodRepo(db *sql.DB) *PeriodRepo {
	return &PeriodRepo{db: db}
}

// Create inserts a period; the (year, term) pair is unique.
func (r *PeriodRepo) Create(ctx context.Context, p *AcademicPeriod) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO academic_periods (year, term, starts_on, ends_on) VALUES (?, ?, ?, ?)`,
		p.Year, p.Term, p.StartsOn, p.EndsOn)
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

// List returns all periods, newest first.
func (r *PeriodRepo) List(ctx context.Context) ([]AcademicPeriod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, term, starts_on, ends_on, is_active
         FROM academic_periods ORDER BY year DESC, term DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AcademicPeriod
	for rows.Next() {
		var p AcademicPeriod
		if err := rows.Scan(&p.ID, &p.Year, &p.Term, &p.StartsOn, &p.EndsOn, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetActive returns the currently active period or ErrPeriodNotFound.
func (r *PeriodRepo) GetActive(ctx context.Context) (*AcademicPeriod, error) {
	var p AcademicPeriod
	err := r.db.QueryRowContext(ctx,
		`SELECT id, year, term, starts_on, ends_on, is_active
         FROM academic_periods WHERE is_active = 1 LIMIT 1`).
		Scan(&p.ID, &p.Year, &p.Term, &p.StartsOn, &p.EndsOn, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPeriodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites a period's year, term and dates.
func (r *PeriodRepo) Update(ctx context.Context, p *AcademicPeriod) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE academic_periods SET year = ?, term = ?, starts_on = ?, ends_on = ? WHERE id = ?`,
		p.Year, p.Term, p.StartsOn, p.EndsOn, p.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM academic_periods WHERE id = ?`, p.ID).Scan(&exists); err != nil {
			return ErrPeriodNotFound
		}
	}
	return nil
}

// Delete removes a period.  The active period cannot be deleted.
func (r *PeriodRepo) Delete(ctx context.Context, id uint64) error {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_active FROM academic_periods WHERE id = ?`, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPeriodNotFound
	}
	if err != nil {
		return err
	}
	if active {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM academic_periods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPeriodNotFound
	}
	return nil
}

// Activate marks one period active and every other inactive, atomically.
func (r *PeriodRepo) Activate(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `UPDATE academic_periods SET is_active = 0 WHERE is_active = 1`); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, `UPDATE academic_periods SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrPeriodNotFound
		return err
	}
	return nil
}

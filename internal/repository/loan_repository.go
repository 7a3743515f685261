package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Loan is a request to borrow a room for a recurring weekly slot.  Approval
// materializes an APPROVED schedule entry (created through the normal
// validated write path) and links it via ScheduleID.
type Loan struct {
	ID         uint64  `json:"id"`
	UserID     uint64  `json:"user_id"`
	RoomID     uint64  `json:"room_id"`
	Day        string  `json:"day"`
	StartsAt   string  `json:"starts_at"`
	EndsAt     string  `json:"ends_at"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"` // PENDING, APPROVED, REJECTED
	ScheduleID *uint64 `json:"schedule_id"`
	CreatedAt  string  `json:"created_at"`
}

// ErrLoanNotFound indicates that a loan was not located.
var ErrLoanNotFound = errors.New("loan not found")

// ErrLoanDecided is returned when approving or rejecting a loan that has
// already left PENDING.
var ErrLoanDecided = errors.New("loan already decided")

// LoanRepo manages persistence for room loans.
type LoanRepo struct {
	db *sql.DB
}

// NewLoanRepo constructs a LoanRepo with the given DB handle.
func NewLoanRepo(db *sql.DB) *LoanRepo {
	return &LoanRepo{db: db}
}

func scanLoan(row interface{ Scan(...any) error }) (*Loan, error) {
	var (
		l          Loan
		scheduleID sql.NullInt64
	)
	err := row.Scan(&l.ID, &l.UserID, &l.RoomID, &l.Day, &l.StartsAt, &l.EndsAt,
		&l.Reason, &l.Status, &scheduleID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if scheduleID.Valid {
		v := uint64(scheduleID.Int64)
		l.ScheduleID = &v
	}
	return &l, nil
}

const loanColumns = `id, user_id, room_id, day, starts_at, ends_at, reason, status, schedule_id, created_at`

// Create inserts a PENDING loan and assigns its generated id.
func (r *LoanRepo) Create(ctx context.Context, l *Loan) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO loans (user_id, room_id, day, starts_at, ends_at, reason) VALUES (?, ?, ?, ?, ?, ?)`,
		l.UserID, l.RoomID, l.Day, l.StartsAt, l.EndsAt, l.Reason)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	fresh, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *fresh
	return nil
}

// GetByID fetches one loan or ErrLoanNotFound.
func (r *LoanRepo) GetByID(ctx context.Context, id uint64) (*Loan, error) {
	l, err := scanLoan(r.db.QueryRowContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLoanNotFound
	}
	return l, err
}

// ListByUser returns a requester's loans, newest first.
func (r *LoanRepo) ListByUser(ctx context.Context, userID uint64) ([]Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans WHERE user_id = ? ORDER BY id DESC`, userID)
}

// ListPending returns every undecided loan, oldest first, for review.
func (r *LoanRepo) ListPending(ctx context.Context) ([]Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans WHERE status = 'PENDING' ORDER BY id ASC`)
}

func (r *LoanRepo) list(ctx context.Context, q string, args ...any) ([]Loan, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve marks a pending loan approved and links the materialized schedule
// entry.  ErrLoanDecided when the loan is no longer pending.
func (r *LoanRepo) Approve(ctx context.Context, id, scheduleID uint64) error {
	return r.decide(ctx, id, "APPROVED", &scheduleID)
}

// Reject marks a pending loan rejected.
func (r *LoanRepo) Reject(ctx context.Context, id uint64) error {
	return r.decide(ctx, id, "REJECTED", nil)
}

func (r *LoanRepo) decide(ctx context.Context, id uint64, status string, scheduleID *uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE loans SET status = ?, schedule_id = ? WHERE id = ? AND status = 'PENDING'`,
		status, nullableID(scheduleID), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrLoanDecided
	}
	return nil
}

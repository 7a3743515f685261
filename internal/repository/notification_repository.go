package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Notification is an in-app message for one user, written by the queue
// consumer when schedule and loan workflow events arrive.
type Notification struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// ErrNotificationNotFound indicates that a notification was not located.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepo manages persistence for notifications.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo constructs a NotificationRepo with the given handle.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a notification for one user.
func (r *NotificationRepo) Create(ctx context.Context, n *Notification) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, title, body) VALUES (?, ?, ?)`,
		n.UserID, n.Title, n.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, body, is_read, created_at
         FROM notifications WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read.  The user filter
// keeps one user from touching another's messages.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Re-marking an already-read row affects nothing; only a missing
		// row is an error.
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM notifications WHERE id = ? AND user_id = ? LIMIT 1`, id, userID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

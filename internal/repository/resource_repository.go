package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Resource is a physical asset (projector, whiteboard, lab kit), optionally
// assigned to one room.
type Resource struct {
	ID       uint64  `json:"id"`
	RoomID   *uint64 `json:"room_id"` // nil = unassigned / in storage
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Quantity uint32  `json:"quantity"`
	IsActive bool    `json:"is_active"`
}

// ErrResourceNotFound indicates that a resource was not located.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceRepo manages persistence for resources.
type ResourceRepo struct {
	db *sql.DB
}

// NewResourceRepo constructs a ResourceRepo with the given DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

func scanResource(row interface{ Scan(...any) error }) (*Resource, error) {
	var (
		res    Resource
		roomID sql.NullInt64
	)
	if err := row.Scan(&res.ID, &roomID, &res.Name, &res.Kind, &res.Quantity, &res.IsActive); err != nil {
		return nil, err
	}
	if roomID.Valid {
		v := uint64(roomID.Int64)
		res.RoomID = &v
	}
	return &res, nil
}

// Create inserts a resource and assigns its generated id.
func (r *ResourceRepo) Create(ctx context.Context, res *Resource) error {
	out, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (room_id, name, kind, quantity) VALUES (?, ?, ?, ?)`,
		nullableID(res.RoomID), res.Name, res.Kind, res.Quantity)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.IsActive = true
	return nil
}

// GetByID fetches one resource or ErrResourceNotFound.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*Resource, error) {
	res, err := scanResource(r.db.QueryRowContext(ctx,
		`SELECT id, room_id, name, kind, quantity, is_active FROM resources WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	return res, err
}

// List returns all resources; when roomID is non-zero only that room's.
func (r *ResourceRepo) List(ctx context.Context, roomID uint64) ([]Resource, error) {
	q := `SELECT id, room_id, name, kind, quantity, is_active FROM resources ORDER BY name ASC`
	args := []any{}
	if roomID != 0 {
		q = `SELECT id, room_id, name, kind, quantity, is_active FROM resources WHERE room_id = ? ORDER BY name ASC`
		args = append(args, roomID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a resource's attributes, including its room assignment.
func (r *ResourceRepo) Update(ctx context.Context, res *Resource) error {
	out, err := r.db.ExecContext(ctx,
		`UPDATE resources SET room_id = ?, name = ?, kind = ?, quantity = ?, is_active = ? WHERE id = ?`,
		nullableID(res.RoomID), res.Name, res.Kind, res.Quantity, res.IsActive, res.ID)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, res.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a resource.
func (r *ResourceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrResourceNotFound
	}
	return nil
}

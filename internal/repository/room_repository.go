package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Room represents a physical space (classroom, lab, auditorium).  Capacity
// is the ceiling the schedule validator checks fused-class headcounts
// against; this layer only ever reads it.
type Room struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Kind     string `json:"kind"` // CLASSROOM, LAB, AUDITORIUM
	Capacity uint32 `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// ErrRoomNotFound indicates that a room was not located.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo manages persistence for rooms and implements schedule.RoomStore.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetCapacity returns the room's name and capacity for the validator.
func (r *RoomRepo) GetCapacity(ctx context.Context, roomID uint64) (string, uint32, error) {
	var (
		name     string
		capacity uint32
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, capacity FROM rooms WHERE id = ?`, roomID).Scan(&name, &capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, ErrRoomNotFound
	}
	return name, capacity, err
}

// Create inserts a room and assigns its generated id.
func (r *RoomRepo) Create(ctx context.Context, room *Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (name, building, kind, capacity) VALUES (?, ?, ?, ?)`,
		room.Name, room.Building, room.Kind, room.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	room.IsActive = true
	return nil
}

// GetByID fetches one room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*Room, error) {
	var room Room
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, building, kind, capacity, is_active FROM rooms WHERE id = ?`, id).
		Scan(&room.ID, &room.Name, &room.Building, &room.Kind, &room.Capacity, &room.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns all rooms ordered by building then name.
func (r *RoomRepo) List(ctx context.Context) ([]Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, building, kind, capacity, is_active FROM rooms ORDER BY building ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Building, &room.Kind, &room.Capacity, &room.IsActive); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a room's attributes.
func (r *RoomRepo) Update(ctx context.Context, room *Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, building = ?, kind = ?, capacity = ?, is_active = ? WHERE id = ?`,
		room.Name, room.Building, room.Kind, room.Capacity, room.IsActive, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, room.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room unless schedule entries still reference it, in
// which case ErrConflict is returned.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE room_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

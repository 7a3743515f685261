package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// RoomHandler bundles room and resource persistence.
type RoomHandler struct {
	Rooms     *repository.RoomRepo
	Resources *repository.ResourceRepo
}

// NewRoomHandler constructs a RoomHandler and panics on nil deps.
func NewRoomHandler(r *repository.RoomRepo, res *repository.ResourceRepo) *RoomHandler {
	if r == nil || res == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: r, Resources: res}
}

func validRoomKind(kind string) bool {
	switch kind {
	case "CLASSROOM", "LAB", "AUDITORIUM":
		return true
	}
	return false
}

// CreateRoom registers a new room.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Building string `json:"building"`
		Kind     string `json:"kind"`
		Capacity uint32 `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Kind = strings.ToUpper(strings.TrimSpace(req.Kind))
	if req.Kind == "" {
		req.Kind = "CLASSROOM"
	}
	if req.Name == "" || !validRoomKind(req.Kind) || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/kind/capacity required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room := repository.Room{
		Name:     req.Name,
		Building: strings.TrimSpace(req.Building),
		Kind:     req.Kind,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if err := h.Rooms.Create(ctx, &room); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room already exists in this building"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms returns every room.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": list})
}

// GetRoom returns one room.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// UpdateRoom rewrites a room's attributes.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name     string `json:"name"`
		Building string `json:"building"`
		Kind     string `json:"kind"`
		Capacity uint32 `json:"capacity"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Kind = strings.ToUpper(strings.TrimSpace(req.Kind))
	if req.Name == "" || !validRoomKind(req.Kind) || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/kind/capacity required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room := repository.Room{
		ID:       id,
		Name:     req.Name,
		Building: strings.TrimSpace(req.Building),
		Kind:     req.Kind,
		Capacity: req.Capacity,
		IsActive: active,
	}
	if err := h.Rooms.Update(ctx, &room); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room already exists in this building"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room with no schedule entries.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room still has schedule entries"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreateResource registers equipment, optionally assigned to a room.
func (h *RoomHandler) CreateResource(c echo.Context) error {
	var req struct {
		RoomID   *uint64 `json:"room_id"`
		Name     string  `json:"name"`
		Kind     string  `json:"kind"`
		Quantity uint32  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.RoomID != nil {
		if _, err := h.Rooms.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	res := repository.Resource{
		RoomID:   req.RoomID,
		Name:     req.Name,
		Kind:     strings.TrimSpace(req.Kind),
		Quantity: req.Quantity,
		IsActive: true,
	}
	if err := h.Resources.Create(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resource failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// ListResources returns resources, optionally filtered by ?room_id=.
func (h *RoomHandler) ListResources(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roomID, _ := queryID(c, "room_id")
	list, err := h.Resources.List(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list resources failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"resources": list})
}

// UpdateResource rewrites a resource.
func (h *RoomHandler) UpdateResource(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		RoomID   *uint64 `json:"room_id"`
		Name     string  `json:"name"`
		Kind     string  `json:"kind"`
		Quantity uint32  `json:"quantity"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/quantity required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res := repository.Resource{
		ID:       id,
		RoomID:   req.RoomID,
		Name:     req.Name,
		Kind:     strings.TrimSpace(req.Kind),
		Quantity: req.Quantity,
		IsActive: active,
	}
	if err := h.Resources.Update(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update resource failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteResource removes a resource.
func (h *RoomHandler) DeleteResource(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Resources.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete resource failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

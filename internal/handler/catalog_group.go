package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreateGroup registers a student group under a program.
func (h *CatalogHandler) CreateGroup(c echo.Context) error {
	var req struct {
		ProgramID uint64 `json:"program_id"`
		Name      string `json:"name"`
		Term      string `json:"term"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ProgramID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id/name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Programs.GetByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	g := repository.StudentGroup{ProgramID: req.ProgramID, Name: req.Name, Term: strings.TrimSpace(req.Term)}
	if err := h.Groups.Create(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "group name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create group failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGroups returns one program's student groups.
func (h *CatalogHandler) ListGroups(c echo.Context) error {
	pid, ok := queryID(c, "program_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Groups.ListByProgram(ctx, pid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list groups failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": list})
}

// UpdateGroup rewrites a student group.
func (h *CatalogHandler) UpdateGroup(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		ProgramID uint64 `json:"program_id"`
		Name      string `json:"name"`
		Term      string `json:"term"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ProgramID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id/name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := repository.StudentGroup{ID: id, ProgramID: req.ProgramID, Name: req.Name, Term: strings.TrimSpace(req.Term)}
	if err := h.Groups.Update(ctx, &g); err != nil {
		switch {
		case errors.Is(err, repository.ErrGroupNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "group name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update group failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// DeleteGroup removes a group that no schedule entry references.
func (h *CatalogHandler) DeleteGroup(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Groups.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrGroupNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "group still has schedule entries"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete group failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

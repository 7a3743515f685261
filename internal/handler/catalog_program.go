package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreateProgram registers a degree program under a faculty.
func (h *CatalogHandler) CreateProgram(c echo.Context) error {
	var req struct {
		FacultyID uint64 `json:"faculty_id"`
		Name      string `json:"name"`
		Code      string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.FacultyID == 0 || req.Name == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "faculty_id/name/code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Faculties.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p := repository.Program{FacultyID: req.FacultyID, Name: req.Name, Code: req.Code}
	if err := h.Programs.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "program code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create program failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPrograms returns all programs, or one faculty's when ?faculty_id= is set.
func (h *CatalogHandler) ListPrograms(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		list []repository.Program
		err  error
	)
	if fid, ok := queryID(c, "faculty_id"); ok {
		list, err = h.Programs.ListByFaculty(ctx, fid)
	} else {
		list, err = h.Programs.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list programs failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"programs": list})
}

// UpdateProgram rewrites a program's faculty, name and code.
func (h *CatalogHandler) UpdateProgram(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		FacultyID uint64 `json:"faculty_id"`
		Name      string `json:"name"`
		Code      string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.FacultyID == 0 || req.Name == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "faculty_id/name/code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := repository.Program{ID: id, FacultyID: req.FacultyID, Name: req.Name, Code: req.Code}
	if err := h.Programs.Update(ctx, &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrProgramNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "program code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update program failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProgram removes a program with no dependent subjects or groups.
func (h *CatalogHandler) DeleteProgram(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Programs.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProgramNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "program still has subjects or groups"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete program failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

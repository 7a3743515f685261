package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreateSubject registers a subject under a program.
func (h *CatalogHandler) CreateSubject(c echo.Context) error {
	var req struct {
		ProgramID uint64 `json:"program_id"`
		Code      string `json:"code"`
		Name      string `json:"name"`
		Credits   uint32 `json:"credits"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if req.ProgramID == 0 || req.Code == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id/code/name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Programs.GetByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "program not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	s := repository.Subject{ProgramID: req.ProgramID, Code: req.Code, Name: req.Name, Credits: req.Credits}
	if err := h.Subjects.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "subject code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create subject failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListSubjects returns one program's subjects.
func (h *CatalogHandler) ListSubjects(c echo.Context) error {
	pid, ok := queryID(c, "program_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Subjects.ListByProgram(ctx, pid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list subjects failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"subjects": list})
}

// UpdateSubject rewrites a subject.
func (h *CatalogHandler) UpdateSubject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		ProgramID uint64 `json:"program_id"`
		Code      string `json:"code"`
		Name      string `json:"name"`
		Credits   uint32 `json:"credits"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if req.ProgramID == 0 || req.Code == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id/code/name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := repository.Subject{ID: id, ProgramID: req.ProgramID, Code: req.Code, Name: req.Name, Credits: req.Credits}
	if err := h.Subjects.Update(ctx, &s); err != nil {
		switch {
		case errors.Is(err, repository.ErrSubjectNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subject not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "subject code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update subject failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSubject removes a subject that no schedule entry references.
func (h *CatalogHandler) DeleteSubject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Subjects.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrSubjectNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subject not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "subject still has schedule entries"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete subject failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

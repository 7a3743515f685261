package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreateFaculty registers a new faculty.
func (h *CatalogHandler) CreateFaculty(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	f := repository.Faculty{Name: req.Name}
	if err := h.Faculties.Create(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "faculty name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create faculty failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// ListFaculties returns every faculty.
func (h *CatalogHandler) ListFaculties(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Faculties.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list faculties failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"faculties": list})
}

// UpdateFaculty renames a faculty.
func (h *CatalogHandler) UpdateFaculty(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	f := repository.Faculty{ID: id, Name: strings.TrimSpace(req.Name)}
	if err := h.Faculties.Update(ctx, &f); err != nil {
		switch {
		case errors.Is(err, repository.ErrFacultyNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "faculty name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update faculty failed"})
	}
	return c.JSON(http.StatusOK, f)
}

// DeleteFaculty removes a faculty with no dependent programs.
func (h *CatalogHandler) DeleteFaculty(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Faculties.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrFacultyNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "faculty still has programs"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete faculty failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// CreatePeriod registers an academic period (year + term).
func (h *CatalogHandler) CreatePeriod(c echo.Context) error {
	var req struct {
		Year     uint32 `json:"year"`
		Term     uint32 `json:"term"`
		StartsOn string `json:"starts_on"`
		EndsOn   string `json:"ends_on"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StartsOn = strings.TrimSpace(req.StartsOn)
	req.EndsOn = strings.TrimSpace(req.EndsOn)
	if req.Year == 0 || req.Term == 0 || req.StartsOn == "" || req.EndsOn == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year/term/starts_on/ends_on required"})
	}
	if req.EndsOn <= req.StartsOn {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_on must be after starts_on"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := repository.AcademicPeriod{Year: req.Year, Term: req.Term, StartsOn: req.StartsOn, EndsOn: req.EndsOn}
	if err := h.Periods.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "period already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create period failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPeriods returns every academic period.
func (h *CatalogHandler) ListPeriods(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Periods.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list periods failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"periods": list})
}

// UpdatePeriod rewrites a period's year, term and dates.
func (h *CatalogHandler) UpdatePeriod(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Year     uint32 `json:"year"`
		Term     uint32 `json:"term"`
		StartsOn string `json:"starts_on"`
		EndsOn   string `json:"ends_on"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StartsOn = strings.TrimSpace(req.StartsOn)
	req.EndsOn = strings.TrimSpace(req.EndsOn)
	if req.Year == 0 || req.Term == 0 || req.StartsOn == "" || req.EndsOn == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year/term/starts_on/ends_on required"})
	}
	if req.EndsOn <= req.StartsOn {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_on must be after starts_on"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := repository.AcademicPeriod{ID: id, Year: req.Year, Term: req.Term, StartsOn: req.StartsOn, EndsOn: req.EndsOn}
	if err := h.Periods.Update(ctx, &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrPeriodNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "academic period not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusConflict, echo.Map{"error": "period already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update period failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePeriod removes an inactive period.
func (h *CatalogHandler) DeletePeriod(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Periods.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPeriodNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "academic period not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete the active period"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete period failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ActivePeriod returns the single active period, if any.
func (h *CatalogHandler) ActivePeriod(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Periods.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPeriodNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no active period"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// ActivatePeriod makes the given period the only active one.
func (h *CatalogHandler) ActivatePeriod(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Periods.Activate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPeriodNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "academic period not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate period failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

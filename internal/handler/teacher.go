package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListTeachers returns active TEACHER accounts for assignment pickers.
func (h *ScheduleHandler) ListTeachers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.ListByRole(ctx, "TEACHER")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list teachers failed"})
	}
	type teacher struct {
		ID       uint64 `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	out := make([]teacher, 0, len(users))
	for _, u := range users {
		out = append(out, teacher{ID: u.ID, Email: u.Email, FullName: u.FullName})
	}
	return c.JSON(http.StatusOK, echo.Map{"teachers": out})
}

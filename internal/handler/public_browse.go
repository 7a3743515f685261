package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface.  These routes sit
// behind the Redis response cache since guests dominate read traffic.
type PublicHandler struct {
	Schedules *repository.ScheduleRepo
	Rooms     *repository.RoomRepo
	Faculties *repository.FacultyRepo
	Programs  *repository.ProgramRepo
}

// NewPublicHandler constructs a PublicHandler and panics on nil deps.
func NewPublicHandler(s *repository.ScheduleRepo, r *repository.RoomRepo,
	f *repository.FacultyRepo, p *repository.ProgramRepo) *PublicHandler {
	if s == nil || r == nil || f == nil || p == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Schedules: s, Rooms: r, Faculties: f, Programs: p}
}

// SearchTimetable filters approved schedule entries by subject, group, room
// and day, with pagination.
func (h *PublicHandler) SearchTimetable(c echo.Context) error {
	q := repository.TimetableQuery{
		Subject: strings.TrimSpace(c.QueryParam("subject")),
		Group:   strings.TrimSpace(c.QueryParam("group")),
		Room:    strings.TrimSpace(c.QueryParam("room")),
		Day:     strings.TrimSpace(c.QueryParam("day")),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, total, err := h.Schedules.SearchTimetable(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 50
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     rows,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// ListRooms exposes the room catalog to guests.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": list})
}

// ListFaculties exposes the faculty catalog to guests.
func (h *PublicHandler) ListFaculties(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Faculties.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list faculties failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"faculties": list})
}

// ListPrograms exposes programs to guests, optionally for one faculty.
func (h *PublicHandler) ListPrograms(c echo.Context) error {
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

// GroupTimetable returns one group's approved timetable to guests.
func (h *PublicHandler) GroupTimetable(c echo.Context) error {
	gid, ok := queryID(c, "group_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "group_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Schedules.ListByGroup(ctx, gid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list schedules failed"})
	}
	// Pending rows stay internal until approved.
	approved := list[:0]
	for _, e := range list {
		if e.Status == "APPROVED" {
			approved = append(approved, e)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"schedules": approved})
}

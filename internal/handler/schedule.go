package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/queue"
	"github.com/sihul/sihul-backend/internal/repository"
	"github.com/sihul/sihul-backend/internal/schedule"
)

// ScheduleHandler owns the validated write path for schedule entries: every
// create and update passes through the conflict validator before touching
// the database, and successful creates trigger the fusion synchronizer.
type ScheduleHandler struct {
	Schedules *repository.ScheduleRepo
	Fused     *repository.FusedScheduleRepo
	Rooms     *repository.RoomRepo
	Groups    *repository.GroupRepo
	Subjects  *repository.SubjectRepo
	Users     *repository.UserRepo
	Validator *schedule.Validator
	Fusion    *schedule.Synchronizer
}

// NewScheduleHandler constructs a ScheduleHandler and panics on nil deps.
func NewScheduleHandler(s *repository.ScheduleRepo, f *repository.FusedScheduleRepo,
	r *repository.RoomRepo, g *repository.GroupRepo, sub *repository.SubjectRepo,
	u *repository.UserRepo, v *schedule.Validator, syn *schedule.Synchronizer) *ScheduleHandler {
	if s == nil || f == nil || r == nil || g == nil || sub == nil || u == nil || v == nil || syn == nil {
		panic("nil dependency passed to NewScheduleHandler")
	}
	return &ScheduleHandler{
		Schedules: s, Fused: f, Rooms: r, Groups: g,
		Subjects: sub, Users: u, Validator: v, Fusion: syn,
	}
}

var weekDays = map[string]bool{
	"Lunes": true, "Martes": true, "Miércoles": true,
	"Jueves": true, "Viernes": true, "Sábado": true, "Domingo": true,
}

// normalizeTime accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
func normalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), true
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), true
	}
	return "", false
}

type scheduleReq struct {
	GroupID   uint64  `json:"group_id"`
	SubjectID uint64  `json:"subject_id"`
	TeacherID *uint64 `json:"teacher_id"`
	RoomID    uint64  `json:"room_id"`
	Day       string  `json:"day"`
	StartsAt  string  `json:"starts_at"`
	EndsAt    string  `json:"ends_at"`
	Headcount *uint32 `json:"headcount"`
	Status    string  `json:"status"`
}

// bindEntry validates the request body and resolves it into an Entry.  The
// returned room name feeds event payloads.
func (h *ScheduleHandler) bindEntry(c echo.Context, ctx context.Context) (*schedule.Entry, string, error) {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.GroupID == 0 || req.SubjectID == 0 || req.RoomID == 0 {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "group_id/subject_id/room_id required")
	}
	day := strings.TrimSpace(req.Day)
	if !weekDays[day] {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid day")
	}
	startsAt, ok := normalizeTime(req.StartsAt)
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid starts_at")
	}
	endsAt, ok := normalizeTime(req.EndsAt)
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid ends_at")
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "APPROVED"
	}
	if status != "APPROVED" && status != "PENDING" {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	group, err := h.Groups.GetByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "group not found")
		}
		return nil, "", err
	}
	if _, err := h.Subjects.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "subject not found")
		}
		return nil, "", err
	}
	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return nil, "", err
	}
	if req.TeacherID != nil {
		u, err := h.Users.GetByID(ctx, *req.TeacherID)
		if err != nil || u.Role != "TEACHER" {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "teacher not found")
		}
	}

	return &schedule.Entry{
		GroupID:   req.GroupID,
		GroupName: group.Name,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		RoomID:    req.RoomID,
		Day:       day,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Headcount: req.Headcount,
		Status:    status,
	}, room.Name, nil
}

func rejectOrFail(c echo.Context, err error) error {
	if errors.Is(err, schedule.ErrInvalidTimeRange) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if schedule.IsRejection(err) {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "schedule validation failed"})
}

// Create validates and persists a new schedule entry, then reconciles the
// fused record and publishes a schedule.created event.  Fusion and
// publishing are best effort: the entry stands even when they fail.
func (h *ScheduleHandler) Create(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, roomName, err := h.bindEntry(c, ctx)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.Validator.Validate(ctx, e); err != nil {
		return rejectOrFail(c, err)
	}
	if err := h.Schedules.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	if e.Status == "APPROVED" {
		if err := h.Fusion.Sync(ctx, e); err != nil {
			log.Printf("schedule %d: %v", e.ID, err)
		}
	}

	uid, _ := getUserID(c)
	go publishEvent(queue.ScheduleEvent{
		Kind:       queue.KindScheduleCreated,
		ScheduleID: e.ID,
		ActorID:    uid,
		GroupName:  e.GroupName,
		RoomName:   roomName,
		Day:        e.Day,
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
	})

	return c.JSON(http.StatusCreated, e)
}

// Update validates and rewrites an existing entry.  The validator skips
// conflict checks when none of the scheduling fields changed.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if prev, err := h.Schedules.GetByID(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if prev == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule entry not found"})
	}

	e, roomName, err := h.bindEntry(c, ctx)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	e.ID = id

	if err := h.Validator.Validate(ctx, e); err != nil {
		return rejectOrFail(c, err)
	}
	if err := h.Schedules.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
	}

	uid, _ := getUserID(c)
	go publishEvent(queue.ScheduleEvent{
		Kind:       queue.KindScheduleUpdated,
		ScheduleID: e.ID,
		ActorID:    uid,
		GroupName:  e.GroupName,
		RoomName:   roomName,
		Day:        e.Day,
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
	})

	return c.JSON(http.StatusOK, e)
}

// Delete removes an entry and publishes a schedule.deleted event.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	prev, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if prev == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule entry not found"})
	}
	if err := h.Schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete schedule failed"})
	}

	roomName := ""
	if room, err := h.Rooms.GetByID(ctx, prev.RoomID); err == nil {
		roomName = room.Name
	}
	uid, _ := getUserID(c)
	go publishEvent(queue.ScheduleEvent{
		Kind:       queue.KindScheduleDeleted,
		ScheduleID: id,
		ActorID:    uid,
		GroupName:  prev.GroupName,
		RoomName:   roomName,
		Day:        prev.Day,
		StartsAt:   prev.StartsAt,
		EndsAt:     prev.EndsAt,
	})

	return c.NoContent(http.StatusNoContent)
}

// Get returns one schedule entry.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if e == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule entry not found"})
	}
	return c.JSON(http.StatusOK, e)
}

// List returns a group's or a room's timetable depending on the query.
func (h *ScheduleHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if gid, ok := queryID(c, "group_id"); ok {
		list, err := h.Schedules.ListByGroup(ctx, gid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list schedules failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"schedules": list})
	}
	if rid, ok := queryID(c, "room_id"); ok {
		list, err := h.Schedules.ListByRoom(ctx, rid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list schedules failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"schedules": list})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "group_id or room_id required"})
}

// Search filters the timetable by subject, group, room and day with
// pagination.  Same shape as the public search, for authenticated tooling.
func (h *ScheduleHandler) Search(c echo.Context) error {
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

// ListFused returns fused class records, optionally for one group.
func (h *ScheduleHandler) ListFused(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		list []schedule.FusedEntry
		err  error
	)
	if gid, ok := queryID(c, "group_id"); ok {
		list, err = h.Fused.ListByGroup(ctx, gid)
	} else {
		list, err = h.Fused.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list fused schedules failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"fused_schedules": list})
}

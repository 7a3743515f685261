package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/queue"
	"github.com/sihul/sihul-backend/internal/repository"
	"github.com/sihul/sihul-backend/internal/schedule"
	queuepub "github.com/sihul/sihul-backend/internal/service"
)

// LoanHandler drives the room-loan workflow: teachers and students request
// a recurring slot, reviewers approve or reject.  Approval materializes an
// APPROVED schedule entry through the validated write path, so a loan can
// never introduce a conflict the timetable itself would refuse.
type LoanHandler struct {
	Loans     *repository.LoanRepo
	Rooms     *repository.RoomRepo
	Groups    *repository.GroupRepo
	Subjects  *repository.SubjectRepo
	Schedules *repository.ScheduleRepo
	Validator *schedule.Validator
	Fusion    *schedule.Synchronizer
}

// NewLoanHandler constructs a LoanHandler and panics on nil deps.
func NewLoanHandler(l *repository.LoanRepo, r *repository.RoomRepo, g *repository.GroupRepo,
	sub *repository.SubjectRepo, s *repository.ScheduleRepo,
	v *schedule.Validator, syn *schedule.Synchronizer) *LoanHandler {
	if l == nil || r == nil || g == nil || sub == nil || s == nil || v == nil || syn == nil {
		panic("nil dependency passed to NewLoanHandler")
	}
	return &LoanHandler{Loans: l, Rooms: r, Groups: g, Subjects: sub, Schedules: s, Validator: v, Fusion: syn}
}

// Create files a PENDING loan request and notifies reviewers via the queue.
func (h *LoanHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		RoomID   uint64 `json:"room_id"`
		Day      string `json:"day"`
		StartsAt string `json:"starts_at"`
		EndsAt   string `json:"ends_at"`
		Reason   string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	day := strings.TrimSpace(req.Day)
	if req.RoomID == 0 || !weekDays[day] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id/day required"})
	}
	startsAt, ok := normalizeTime(req.StartsAt)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at"})
	}
	endsAt, ok := normalizeTime(req.EndsAt)
	if !ok || endsAt <= startsAt {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_at"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	loan := repository.Loan{
		UserID:   uid,
		RoomID:   req.RoomID,
		Day:      day,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Reason:   strings.TrimSpace(req.Reason),
	}
	if err := h.Loans.Create(ctx, &loan); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create loan failed"})
	}

	go publishEvent(queue.ScheduleEvent{
		Kind:     queue.KindLoanRequested,
		LoanID:   loan.ID,
		ActorID:  uid,
		RoomName: room.Name,
		Day:      loan.Day,
		StartsAt: loan.StartsAt,
		EndsAt:   loan.EndsAt,
		Detail:   loan.Reason,
	})

	return c.JSON(http.StatusCreated, loan)
}

// ListMine returns the caller's loan requests.
func (h *LoanHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Loans.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list loans failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loans": list})
}

// ListPending returns every undecided loan for reviewers.
func (h *LoanHandler) ListPending(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Loans.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list loans failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loans": list})
}

// Approve accepts a pending loan.  The reviewer supplies the group and
// subject to record the slot under; the assembled entry passes through the
// same validator as any other schedule write, so a conflicting loan is
// rejected with the same 409 a manual entry would get.
func (h *LoanHandler) Approve(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		GroupID   uint64  `json:"group_id"`
		SubjectID uint64  `json:"subject_id"`
		Headcount *uint32 `json:"headcount"`
	}
	if err := c.Bind(&req); err != nil || req.GroupID == 0 || req.SubjectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "group_id/subject_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	loan, err := h.Loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "loan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if loan.Status != "PENDING" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "loan already decided"})
	}

	group, err := h.Groups.GetByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Subjects.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subject not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	entry := schedule.Entry{
		GroupID:   req.GroupID,
		GroupName: group.Name,
		SubjectID: req.SubjectID,
		RoomID:    loan.RoomID,
		Day:       loan.Day,
		StartsAt:  loan.StartsAt,
		EndsAt:    loan.EndsAt,
		Headcount: req.Headcount,
		Status:    "APPROVED",
	}
	if err := h.Validator.Validate(ctx, &entry); err != nil {
		return rejectOrFail(c, err)
	}
	if err := h.Schedules.Create(ctx, &entry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	if err := h.Fusion.Sync(ctx, &entry); err != nil {
		log.Printf("schedule %d: %v", entry.ID, err)
	}

	if err := h.Loans.Approve(ctx, id, entry.ID); err != nil {
		// The slot was already persisted; surface the decision failure.
		if errors.Is(err, repository.ErrLoanDecided) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "loan already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve loan failed"})
	}

	roomName := ""
	if room, err := h.Rooms.GetByID(ctx, loan.RoomID); err == nil {
		roomName = room.Name
	}
	uid, _ := getUserID(c)
	target := loan.UserID
	go publishEvent(queue.ScheduleEvent{
		Kind:       queue.KindLoanApproved,
		LoanID:     loan.ID,
		ScheduleID: entry.ID,
		ActorID:    uid,
		TargetID:   &target,
		RoomName:   roomName,
		Day:        loan.Day,
		StartsAt:   loan.StartsAt,
		EndsAt:     loan.EndsAt,
	})

	loan.Status = "APPROVED"
	loan.ScheduleID = &entry.ID
	return c.JSON(http.StatusOK, loan)
}

// Reject declines a pending loan.
func (h *LoanHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	loan, err := h.Loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "loan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.Loans.Reject(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLoanNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "loan not found"})
		case errors.Is(err, repository.ErrLoanDecided):
			return c.JSON(http.StatusConflict, echo.Map{"error": "loan already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject loan failed"})
	}

	roomName := ""
	if room, err := h.Rooms.GetByID(ctx, loan.RoomID); err == nil {
		roomName = room.Name
	}
	uid, _ := getUserID(c)
	target := loan.UserID
	go publishEvent(queue.ScheduleEvent{
		Kind:     queue.KindLoanRejected,
		LoanID:   loan.ID,
		ActorID:  uid,
		TargetID: &target,
		RoomName: roomName,
		Day:      loan.Day,
		StartsAt: loan.StartsAt,
		EndsAt:   loan.EndsAt,
	})

	loan.Status = "REJECTED"
	return c.JSON(http.StatusOK, loan)
}

func publishEvent(ev queue.ScheduleEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queuepub.PublishScheduleEvent(ctx, ev)
}

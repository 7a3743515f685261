package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTimeRange is returned when an entry's end time is not strictly
// after its start time.  The schema carries the same CHECK constraint, but
// the validator rejects first so callers get a readable message instead of
// a driver error.
var ErrInvalidTimeRange = errors.New("schedule end time must be after start time")

// RoomConflictError reports that a different class already occupies the
// requested room during an overlapping window.  Always fatal to the write;
// the message carries enough context for the user to pick another slot.
type RoomConflictError struct {
	Room     string // room display name
	Day      string // day label, e.g. "Lunes"
	StartsAt string // conflicting window start
	EndsAt   string // conflicting window end
	Group    string // group already occupying the slot
}

func (e *RoomConflictError) Error() string {
	return fmt.Sprintf("room %s is already occupied on %s from %s to %s by group %s",
		e.Room, e.Day, e.StartsAt, e.EndsAt, e.Group)
}

// CapacityExceededError reports that adding one more group to a shared
// class would push the combined headcount past the room's capacity.
type CapacityExceededError struct {
	Room     string   // room display name
	Groups   []string // groups already sharing the class
	Existing uint32   // headcount already in the room for this class
	Total    uint32   // headcount including the entry being written
	Capacity uint32   // room capacity ceiling
}

func (e *CapacityExceededError) Error() string {
	groups := strings.Join(e.Groups, ", ")
	if groups == "" {
		groups = "none"
	}
	return fmt.Sprintf("room %s cannot fit the shared class: groups [%s] already total %d students, adding this group makes %d but capacity is %d",
		e.Room, groups, e.Existing, e.Total, e.Capacity)
}

// IsRejection reports whether err is one of the validator's business-rule
// rejections, as opposed to an infrastructure failure.  Handlers use it to
// choose between 409 and 500.
func IsRejection(err error) bool {
	var rc *RoomConflictError
	var ce *CapacityExceededError
	return errors.Is(err, ErrInvalidTimeRange) || errors.As(err, &rc) || errors.As(err, &ce)
}

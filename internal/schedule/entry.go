// Package schedule implements the class-schedule conflict rules of SIHUL:
// time-overlap detection inside a room, recognition of the same class being
// taught to several student groups at once, and maintenance of the derived
// fused-schedule records that summarize those shared classes.  The package
// is pure business logic; persistence is reached through the narrow store
// interfaces below, implemented by the repository layer.
package schedule

import "context"

// MaxFusedGroups caps how many student groups a fused class may hold.  The
// fused record has exactly three group slots; a fourth concurrent group is
// silently dropped.
const MaxFusedGroups = 3

// Entry is a single class-occupancy record: one group attending one subject
// in one room, on one day of the week, within one time window.  Times are
// carried in the DB format "HH:MM:SS" (a plain time of day, no date).
type Entry struct {
	ID        uint64  `json:"id"`         // schedules.id (0 when not yet persisted)
	GroupID   uint64  `json:"group_id"`   // schedules.group_id
	GroupName string  `json:"group"`      // student_groups.name, joined in by the repository
	SubjectID uint64  `json:"subject_id"` // schedules.subject_id
	TeacherID *uint64 `json:"teacher_id"` // schedules.teacher_id (nil = unassigned)
	RoomID    uint64  `json:"room_id"`    // schedules.room_id
	Day       string  `json:"day"`        // day-of-week label, e.g. "Lunes"
	StartsAt  string  `json:"starts_at"`  // "HH:MM:SS"
	EndsAt    string  `json:"ends_at"`    // "HH:MM:SS", strictly after StartsAt
	Headcount *uint32 `json:"headcount"`  // enrolled students (nil = unknown, counts as 0)
	Status    string  `json:"status"`     // PENDING or APPROVED; only APPROVED rows take part in checks
}

// FusedEntry is the derived record for 2-3 groups co-attending the identical
// class.  It never originates user intent: it is always recomputable from
// the schedule entries it summarizes.
type FusedEntry struct {
	ID        uint64  `json:"id"`
	Group1ID  uint64  `json:"group1_id"`
	Group2ID  uint64  `json:"group2_id"`
	Group3ID  *uint64 `json:"group3_id"` // nil while only two groups share the class
	SubjectID uint64  `json:"subject_id"`
	TeacherID *uint64 `json:"teacher_id"`
	RoomID    uint64  `json:"room_id"`
	Day       string  `json:"day"`
	StartsAt  string  `json:"starts_at"`
	EndsAt    string  `json:"ends_at"`
	Headcount uint32  `json:"headcount"` // sum across the fused schedule entries
	Comment   string  `json:"comment"`
}

// GroupIDs returns the occupied group slots in order.
func (f *FusedEntry) GroupIDs() []uint64 {
	ids := []uint64{f.Group1ID, f.Group2ID}
	if f.Group3ID != nil {
		ids = append(ids, *f.Group3ID)
	}
	return ids
}

// EntryStore is the read surface the validator and synchronizer need over
// persisted schedule entries.  All listing methods exclude the row whose id
// equals excludeID (pass 0 for "exclude nothing") and only return APPROVED
// rows.
type EntryStore interface {
	// GetByID fetches the persisted version of an entry, or nil when the
	// id does not exist.
	GetByID(ctx context.Context, id uint64) (*Entry, error)
	// ListByRoomAndDay returns every other entry occupying the same room on
	// the same day, in ascending id order.
	ListByRoomAndDay(ctx context.Context, roomID uint64, day string, excludeID uint64) ([]Entry, error)
	// ListSameClassInRoom returns every other entry in e's room that shares
	// e's class signature (subject, teacher, day, start, end), ascending id.
	ListSameClassInRoom(ctx context.Context, e *Entry, excludeID uint64) ([]Entry, error)
	// ListBySignatureForGroups returns every entry matching e's class
	// signature, regardless of room, whose group is in groupIDs.
	ListBySignatureForGroups(ctx context.Context, e *Entry, groupIDs []uint64) ([]Entry, error)
}

// RoomStore exposes the one thing this package reads from rooms.
type RoomStore interface {
	// GetCapacity returns the room's display name and seat capacity.
	GetCapacity(ctx context.Context, roomID uint64) (name string, capacity uint32, err error)
}

// FusionStore is the persistence surface for derived fused records.
type FusionStore interface {
	// FindBySignature locates a fused record matching e's class signature
	// where any of the three group slots intersects groupIDs.  Returns nil
	// when none exists.
	FindBySignature(ctx context.Context, e *Entry, groupIDs []uint64) (*FusedEntry, error)
	Create(ctx context.Context, f *FusedEntry) error
	Update(ctx context.Context, f *FusedEntry) error
}

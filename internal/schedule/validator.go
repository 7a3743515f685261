package schedule

import "context"

// Validator is the pre-write gate for schedule entries.  It must run, and
// return nil, before any create — or any update touching room, day, times,
// subject, teacher or headcount — is persisted.  The write path calls it
// explicitly; there is no implicit hook wiring.
type Validator struct {
	Entries EntryStore
	Rooms   RoomStore
}

// NewValidator constructs a Validator over the given stores.
func NewValidator(entries EntryStore, rooms RoomStore) *Validator {
	if entries == nil || rooms == nil {
		panic("nil store passed to NewValidator")
	}
	return &Validator{Entries: entries, Rooms: rooms}
}

// Validate accepts or rejects the entry about to be written.  A nil return
// means the write may proceed.  Rejections come back as ErrInvalidTimeRange,
// *RoomConflictError or *CapacityExceededError; anything else is a store
// failure.
func (v *Validator) Validate(ctx context.Context, e *Entry) error {
	if minuteOfDay(e.EndsAt) <= minuteOfDay(e.StartsAt) {
		return ErrInvalidTimeRange
	}

	// Updates that leave every scheduling field untouched (comment-style
	// edits) skip the conflict scan entirely.
	if e.ID != 0 {
		prev, err := v.Entries.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if prev != nil && !schedulingChanged(prev, e) {
			return nil
		}
	}

	candidates, err := v.Entries.ListByRoomAndDay(ctx, e.RoomID, e.Day, e.ID)
	if err != nil {
		return err
	}

	for i := range candidates {
		cand := &candidates[i]
		if !Overlaps(e.StartsAt, e.EndsAt, cand.StartsAt, cand.EndsAt) {
			continue
		}
		roomName, capacity, err := v.Rooms.GetCapacity(ctx, e.RoomID)
		if err != nil {
			return err
		}
		if !SameClass(e, cand) {
			// A different class holds the slot: hard conflict.
			return &RoomConflictError{
				Room:     roomName,
				Day:      e.Day,
				StartsAt: cand.StartsAt,
				EndsAt:   cand.EndsAt,
				Group:    cand.GroupName,
			}
		}
		// Same class taught to another group.  Sharing is allowed as long
		// as everyone still fits in the room.
		peers, err := v.Entries.ListSameClassInRoom(ctx, e, e.ID)
		if err != nil {
			return err
		}
		existing := AggregateHeadcount(peers)
		total := existing + headcountOf(e)
		if total > capacity {
			names := make([]string, 0, len(peers))
			for j := range peers {
				names = append(names, peers[j].GroupName)
			}
			return &CapacityExceededError{
				Room:     roomName,
				Groups:   names,
				Existing: existing,
				Total:    total,
				Capacity: capacity,
			}
		}
		// The first overlapping candidate settles the outcome; remaining
		// candidates are not cross-checked pairwise.
		return nil
	}
	return nil
}

// schedulingChanged reports whether any field relevant to conflict checking
// differs between the persisted version and the incoming one.
func schedulingChanged(prev, next *Entry) bool {
	return prev.RoomID != next.RoomID ||
		prev.Day != next.Day ||
		minuteOfDay(prev.StartsAt) != minuteOfDay(next.StartsAt) ||
		minuteOfDay(prev.EndsAt) != minuteOfDay(next.EndsAt) ||
		prev.SubjectID != next.SubjectID ||
		!sameTeacher(prev.TeacherID, next.TeacherID) ||
		headcountOf(prev) != headcountOf(next)
}

package schedule

import (
	"context"
	"fmt"
)

// Synchronizer reconciles the derived fused-schedule records after a
// schedule entry has been created.  It runs strictly after the insert
// committed and is best-effort: callers log its error and move on, the
// committed entry is never rolled back on a fusion failure.
type Synchronizer struct {
	Entries EntryStore
	Fusions FusionStore
}

// NewSynchronizer constructs a Synchronizer over the given stores.
func NewSynchronizer(entries EntryStore, fusions FusionStore) *Synchronizer {
	if entries == nil || fusions == nil {
		panic("nil store passed to NewSynchronizer")
	}
	return &Synchronizer{Entries: entries, Fusions: fusions}
}

// Sync scans for sibling entries sharing the just-created entry's class in
// the same room and creates or updates the fused record that summarizes
// them.  A class taught to a single group produces no fused record.
func (s *Synchronizer) Sync(ctx context.Context, e *Entry) error {
	siblings, err := s.Entries.ListSameClassInRoom(ctx, e, e.ID)
	if err != nil {
		return fmt.Errorf("fusion sync: list siblings: %w", err)
	}
	if len(siblings) == 0 {
		return nil
	}

	// Participant list: the new entry's group first, then siblings in id
	// order.  Truncated to the three fused slots before deduplication, so
	// a fourth concurrent group is silently dropped.
	raw := make([]uint64, 0, 1+len(siblings))
	raw = append(raw, e.GroupID)
	for i := range siblings {
		raw = append(raw, siblings[i].GroupID)
	}
	if len(raw) > MaxFusedGroups {
		raw = raw[:MaxFusedGroups]
	}
	groups := distinct(raw)
	if len(groups) < 2 {
		return nil
	}

	// Authoritative total: every entry matching the class signature whose
	// group participates, regardless of room.  The just-created entry is
	// already persisted and therefore included.
	members, err := s.Entries.ListBySignatureForGroups(ctx, e, groups)
	if err != nil {
		return fmt.Errorf("fusion sync: aggregate members: %w", err)
	}
	total := AggregateHeadcount(members)

	f, err := s.Fusions.FindBySignature(ctx, e, groups)
	if err != nil {
		return fmt.Errorf("fusion sync: find fused record: %w", err)
	}
	if f == nil {
		f = &FusedEntry{
			Group1ID:  groups[0],
			Group2ID:  groups[1],
			SubjectID: e.SubjectID,
			TeacherID: e.TeacherID,
			RoomID:    e.RoomID,
			Day:       e.Day,
			StartsAt:  e.StartsAt,
			EndsAt:    e.EndsAt,
			Headcount: total,
			Comment:   fmt.Sprintf("class shared by %d groups", len(groups)),
		}
		if len(groups) == MaxFusedGroups {
			g := groups[2]
			f.Group3ID = &g
		}
		if err := s.Fusions.Create(ctx, f); err != nil {
			return fmt.Errorf("fusion sync: create fused record: %w", err)
		}
		return nil
	}

	// Merge the stored slots with the fresh participant list, keeping the
	// three-slot cap, and write back only when something actually moved.
	merged := f.GroupIDs()
	grew := false
	for _, g := range groups {
		if len(merged) == MaxFusedGroups {
			break
		}
		if !containsGroup(merged, g) {
			merged = append(merged, g)
			grew = true
		}
	}
	if !grew && f.Headcount == total {
		return nil
	}
	f.Group1ID = merged[0]
	f.Group2ID = merged[1]
	f.Group3ID = nil
	if len(merged) == MaxFusedGroups {
		g := merged[2]
		f.Group3ID = &g
	}
	f.Headcount = total
	f.Comment = fmt.Sprintf("class shared by %d groups", len(merged))
	if err := s.Fusions.Update(ctx, f); err != nil {
		return fmt.Errorf("fusion sync: update fused record: %w", err)
	}
	return nil
}

func distinct(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !containsGroup(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func containsGroup(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

package schedule_test

import (
	"context"
	"testing"

	"github.com/sihul/sihul-backend/internal/schedule"
)

// sharedClass returns an entry attending subject 10 with teacher 7 in room 1
// on Monday 08:00-10:00, the class signature used throughout these tests.
func sharedClass(id, group uint64, name string, headcount uint32) schedule.Entry {
	return schedule.Entry{
		ID:        id,
		GroupID:   group,
		GroupName: name,
		SubjectID: 10,
		TeacherID: u64p(7),
		RoomID:    1,
		Day:       "Lunes",
		StartsAt:  "08:00:00",
		EndsAt:    "10:00:00",
		Headcount: u32p(headcount),
	}
}

func TestSyncNoFusionForLoneClass(t *testing.T) {
	store := newFakeStore()
	e := store.add(sharedClass(1, 1, "ISW-A", 20))
	s := schedule.NewSynchronizer(store, store)

	if err := s.Sync(context.Background(), &e); err != nil {
		t.Fatalf("Sync = %v", err)
	}
	if len(store.fused) != 0 {
		t.Fatalf("fused records = %d, want 0 for a lone class", len(store.fused))
	}
}

func TestSyncCreatesFusionOnSecondEntry(t *testing.T) {
	store := newFakeStore()
	store.add(sharedClass(1, 1, "ISW-A", 20))
	e2 := store.add(sharedClass(2, 2, "ISW-B", 15))
	s := schedule.NewSynchronizer(store, store)

	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("Sync = %v", err)
	}
	if len(store.fused) != 1 {
		t.Fatalf("fused records = %d, want exactly 1", len(store.fused))
	}
	f := store.fused[0]
	if f.Group1ID != 2 || f.Group2ID != 1 || f.Group3ID != nil {
		t.Errorf("fused groups = %d,%d,%v — want the new entry's group first, then the sibling", f.Group1ID, f.Group2ID, f.Group3ID)
	}
	if f.Headcount != 35 {
		t.Errorf("fused headcount = %d, want 35", f.Headcount)
	}
	if f.SubjectID != 10 || f.RoomID != 1 || f.Day != "Lunes" {
		t.Errorf("fused signature = %+v", f)
	}
}

func TestSyncUpdatesSameFusionOnThirdEntry(t *testing.T) {
	store := newFakeStore()
	store.add(sharedClass(1, 1, "ISW-A", 20))
	e2 := store.add(sharedClass(2, 2, "ISW-B", 15))
	s := schedule.NewSynchronizer(store, store)
	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("Sync e2 = %v", err)
	}

	e3 := store.add(sharedClass(3, 3, "ISW-C", 10))
	if err := s.Sync(context.Background(), &e3); err != nil {
		t.Fatalf("Sync e3 = %v", err)
	}
	if len(store.fused) != 1 {
		t.Fatalf("fused records = %d, want the existing record updated, not a second one", len(store.fused))
	}
	f := store.fused[0]
	groups := f.GroupIDs()
	if len(groups) != 3 {
		t.Fatalf("fused group slots = %v, want all three occupied", groups)
	}
	for _, want := range []uint64{1, 2, 3} {
		found := false
		for _, g := range groups {
			if g == want {
				found = true
			}
		}
		if !found {
			t.Errorf("group %d missing from fused record %v", want, groups)
		}
	}
	if f.Headcount != 45 {
		t.Errorf("fused headcount = %d, want 45", f.Headcount)
	}
}

func TestSyncDropsFourthGroup(t *testing.T) {
	store := newFakeStore()
	store.add(sharedClass(1, 1, "ISW-A", 10))
	e2 := store.add(sharedClass(2, 2, "ISW-B", 10))
	s := schedule.NewSynchronizer(store, store)
	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("Sync e2 = %v", err)
	}
	e3 := store.add(sharedClass(3, 3, "ISW-C", 10))
	if err := s.Sync(context.Background(), &e3); err != nil {
		t.Fatalf("Sync e3 = %v", err)
	}

	e4 := store.add(sharedClass(4, 4, "ISW-D", 10))
	if err := s.Sync(context.Background(), &e4); err != nil {
		t.Fatalf("Sync e4 = %v", err)
	}
	if len(store.fused) != 1 {
		t.Fatalf("fused records = %d, want still 1", len(store.fused))
	}
	groups := store.fused[0].GroupIDs()
	if len(groups) != 3 {
		t.Fatalf("fused group slots = %v, want the three-slot cap preserved", groups)
	}
	for _, g := range groups {
		if g == 4 {
			t.Error("fourth group must be silently dropped, not squeezed into a slot")
		}
	}
}

func TestSyncIdempotentWhenNothingChanged(t *testing.T) {
	store := newFakeStore()
	store.add(sharedClass(1, 1, "ISW-A", 20))
	e2 := store.add(sharedClass(2, 2, "ISW-B", 15))
	s := schedule.NewSynchronizer(store, store)
	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("first Sync = %v", err)
	}
	creates, updates := store.creates, store.updates

	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("second Sync = %v", err)
	}
	if store.creates != creates || store.updates != updates {
		t.Errorf("re-scan wrote (creates %d->%d, updates %d->%d), want a no-op",
			creates, store.creates, updates, store.updates)
	}
}

func TestSyncRecomputesHeadcountOnDrift(t *testing.T) {
	store := newFakeStore()
	store.add(sharedClass(1, 1, "ISW-A", 20))
	e2 := store.add(sharedClass(2, 2, "ISW-B", 15))
	s := schedule.NewSynchronizer(store, store)
	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("Sync = %v", err)
	}

	// Enrollment moved under the fused record's feet.
	store.entries[0].Headcount = u32p(25)
	if err := s.Sync(context.Background(), &e2); err != nil {
		t.Fatalf("re-Sync = %v", err)
	}
	if got := store.fused[0].Headcount; got != 40 {
		t.Errorf("fused headcount = %d, want 40 after recompute", got)
	}
}

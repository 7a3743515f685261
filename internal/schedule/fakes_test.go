package schedule_test

import (
	"context"
	"fmt"

	"github.com/sihul/sihul-backend/internal/schedule"
)

// fakeStore backs the validator and synchronizer tests with an in-memory
// implementation of the three store interfaces.  Filtering mirrors the
// MySQL repositories: only APPROVED rows participate and listings come back
// in ascending id order (entries are appended with increasing ids).
type fakeStore struct {
	entries     []schedule.Entry
	fused       []schedule.FusedEntry
	rooms       map[uint64]fakeRoom
	nextFusedID uint64
	creates     int
	updates     int
}

type fakeRoom struct {
	name     string
	capacity uint32
}

func newFakeStore() *fakeStore {
	return &fakeStore{rooms: map[uint64]fakeRoom{}}
}

func (s *fakeStore) addRoom(id uint64, name string, capacity uint32) {
	s.rooms[id] = fakeRoom{name: name, capacity: capacity}
}

func (s *fakeStore) add(e schedule.Entry) schedule.Entry {
	if e.Status == "" {
		e.Status = "APPROVED"
	}
	s.entries = append(s.entries, e)
	return e
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (*schedule.Entry, error) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListByRoomAndDay(_ context.Context, roomID uint64, day string, excludeID uint64) ([]schedule.Entry, error) {
	var out []schedule.Entry
	for i := range s.entries {
		e := s.entries[i]
		if e.Status != "APPROVED" || e.RoomID != roomID || e.Day != day || e.ID == excludeID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStore) ListSameClassInRoom(_ context.Context, e *schedule.Entry, excludeID uint64) ([]schedule.Entry, error) {
	var out []schedule.Entry
	for i := range s.entries {
		cand := s.entries[i]
		if cand.Status != "APPROVED" || cand.ID == excludeID {
			continue
		}
		if cand.RoomID == e.RoomID && cand.Day == e.Day && schedule.SameClass(e, &cand) {
			out = append(out, cand)
		}
	}
	return out, nil
}

func (s *fakeStore) ListBySignatureForGroups(_ context.Context, e *schedule.Entry, groupIDs []uint64) ([]schedule.Entry, error) {
	var out []schedule.Entry
	for i := range s.entries {
		cand := s.entries[i]
		if cand.Status != "APPROVED" || cand.Day != e.Day || !schedule.SameClass(e, &cand) {
			continue
		}
		for _, g := range groupIDs {
			if cand.GroupID == g {
				out = append(out, cand)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) GetCapacity(_ context.Context, roomID uint64) (string, uint32, error) {
	r, ok := s.rooms[roomID]
	if !ok {
		return "", 0, fmt.Errorf("room %d not found", roomID)
	}
	return r.name, r.capacity, nil
}

func (s *fakeStore) FindBySignature(_ context.Context, e *schedule.Entry, groupIDs []uint64) (*schedule.FusedEntry, error) {
	for i := range s.fused {
		f := s.fused[i]
		if f.SubjectID != e.SubjectID || f.Day != e.Day || f.StartsAt != e.StartsAt || f.EndsAt != e.EndsAt {
			continue
		}
		if !sameTeacherRef(f.TeacherID, e.TeacherID) {
			continue
		}
		for _, slot := range f.GroupIDs() {
			for _, g := range groupIDs {
				if slot == g {
					out := f
					return &out, nil
				}
			}
		}
	}
	return nil, nil
}

func (s *fakeStore) Create(_ context.Context, f *schedule.FusedEntry) error {
	s.nextFusedID++
	f.ID = s.nextFusedID
	s.fused = append(s.fused, *f)
	s.creates++
	return nil
}

func (s *fakeStore) Update(_ context.Context, f *schedule.FusedEntry) error {
	for i := range s.fused {
		if s.fused[i].ID == f.ID {
			s.fused[i] = *f
			s.updates++
			return nil
		}
	}
	return fmt.Errorf("fused record %d not found", f.ID)
}

func sameTeacherRef(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func u64p(v uint64) *uint64 { return &v }
func u32p(v uint32) *uint32 { return &v }

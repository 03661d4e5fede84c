// Package store holds the editable schedule of a cinema.
//
// Every mutation builds a new immutable snapshot and swaps it in as a single
// transition, so listeners never observe a half-applied change. Unknown
// auditorium or slot ids make a mutation a silent no-op.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/duc19092005/cinesched/internal/schedule"
)

// Store errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNoRepository  = errors.New("no repository configured")
)

const defaultMaxHistory = 50

// Listener is called after every state transition with a copy of the new schedule.
type Listener func(*schedule.Data)

type historyEntry struct {
	description string
	data        *schedule.Data
	version     uint64
}

// Store is the single source of truth for the slots of every auditorium.
type Store struct {
	mu sync.Mutex

	// data is never modified in place; transitions replace the pointer.
	data    *schedule.Data
	version uint64
	saved   uint64
	seq     uint64

	history    []historyEntry
	maxHistory int

	listeners map[int]Listener
	nextID    int
}

// New creates a store holding data. A nil data yields an empty schedule.
func New(data *schedule.Data) *Store {
	if data == nil {
		data = &schedule.Data{}
	}
	return &Store{
		data:       data.Clone(),
		maxHistory: defaultMaxHistory,
		listeners:  make(map[int]Listener),
	}
}

// Load reads the schedule of cinemaID from repo and makes sure every
// auditorium has a list, even when nothing has been stored for it yet.
func Load(ctx context.Context, repo schedule.Repository, cinemaID string, auditoriums []schedule.Auditorium) (*Store, error) {
	data := schedule.NewData(cinemaID, auditoriums)
	if repo != nil {
		stored, err := repo.LoadSchedule(ctx, cinemaID)
		if err != nil {
			return nil, fmt.Errorf("loading schedule: %w", err)
		}
		data = merge(data, stored)
	}
	return New(data), nil
}

// merge lays stored slots over the empty per-auditorium lists of base.
// Auditoriums unknown to base are kept so no stored slot is dropped.
func merge(base, stored *schedule.Data) *schedule.Data {
	if stored == nil {
		return base
	}
	for _, a := range stored.Auditoriums {
		i := slices.IndexFunc(base.Auditoriums, func(b schedule.AuditoriumSchedule) bool {
			return b.AuditoriumID == a.AuditoriumID
		})
		if i < 0 {
			base.Auditoriums = append(base.Auditoriums, schedule.AuditoriumSchedule{AuditoriumID: a.AuditoriumID})
			i = len(base.Auditoriums) - 1
		}
		base.Auditoriums[i].Slots = append(base.Auditoriums[i].Slots, a.Slots...)
	}
	return base
}

// Snapshot returns a copy of the current schedule.
func (s *Store) Snapshot() *schedule.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// CinemaID returns the id of the cinema the schedule belongs to.
func (s *Store) CinemaID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CinemaID
}

// Slots returns a copy of the slots of one auditorium.
func (s *Store) Slots(auditoriumID string) []schedule.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Slots(auditoriumID)
}

// SlotsOn returns the slots of one auditorium starting on date's calendar day.
func (s *Store) SlotsOn(auditoriumID string, date time.Time) []schedule.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.SlotsOn(auditoriumID, date)
}

// FindSlot looks a slot up by id across all auditoriums.
func (s *Store) FindSlot(slotID string) (auditoriumID string, slot schedule.Slot, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.FindSlot(slotID)
}

// AddSlot appends slot to the auditorium's list, creating the list if needed.
// No collision or format check is made here. A slot whose id is already in
// the schedule is ignored.
func (s *Store) AddSlot(auditoriumID string, slot schedule.Slot) {
	s.transition("Add: "+slot.ID, func(d *schedule.Data) bool {
		if _, _, taken := d.FindSlot(slot.ID); taken {
			return false
		}
		i := ensure(d, auditoriumID)
		d.Auditoriums[i].Slots = append(d.Auditoriums[i].Slots, slot)
		return true
	})
}

// UpdateSlot merges patch into the slot. Unknown ids are ignored.
func (s *Store) UpdateSlot(auditoriumID, slotID string, patch schedule.SlotPatch) {
	s.transition("Update: "+slotID, func(d *schedule.Data) bool {
		i, j := locate(d, auditoriumID, slotID)
		if j < 0 {
			return false
		}
		d.Auditoriums[i].Slots[j] = patch.Apply(d.Auditoriums[i].Slots[j])
		return true
	})
}

// DeleteSlot removes the slot. Unknown ids are ignored.
func (s *Store) DeleteSlot(auditoriumID, slotID string) {
	s.transition("Delete: "+slotID, func(d *schedule.Data) bool {
		i, j := locate(d, auditoriumID, slotID)
		if j < 0 {
			return false
		}
		d.Auditoriums[i].Slots = slices.Delete(d.Auditoriums[i].Slots, j, j+1)
		return true
	})
}

// MoveSlot removes updated.ID from fromID and appends updated to toID in a
// single transition. fromID and toID may be the same auditorium.
// The move is ignored when the slot is not in fromID or its id also
// appears elsewhere in the schedule.
func (s *Store) MoveSlot(fromID, toID string, updated schedule.Slot) {
	s.transition("Move: "+updated.ID, func(d *schedule.Data) bool {
		i, j := locate(d, fromID, updated.ID)
		if j < 0 {
			return false
		}
		d.Auditoriums[i].Slots = slices.Delete(d.Auditoriums[i].Slots, j, j+1)
		if _, _, taken := d.FindSlot(updated.ID); taken {
			return false
		}
		k := ensure(d, toID)
		d.Auditoriums[k].Slots = append(d.Auditoriums[k].Slots, updated)
		return true
	})
}

// Replace swaps the whole schedule, e.g. after a reload. It is undoable.
func (s *Store) Replace(data *schedule.Data) {
	if data == nil {
		return
	}
	s.transition("Replace", func(d *schedule.Data) bool {
		*d = *data.Clone()
		return true
	})
}

// transition applies fn to a copy of the current schedule and publishes
// the copy if fn reports a change.
func (s *Store) transition(description string, fn func(*schedule.Data) bool) {
	s.mu.Lock()
	next := s.data.Clone()
	if !fn(next) {
		s.mu.Unlock()
		return
	}
	s.pushHistory(description)
	s.data = next
	s.seq++
	s.version = s.seq
	listeners := s.listenerList()
	s.mu.Unlock()

	s.notify(listeners, next)
}

// pushHistory saves the current state before a modification. Caller holds mu.
func (s *Store) pushHistory(description string) {
	if len(s.history) >= s.maxHistory {
		s.history = s.history[1:]
	}
	s.history = append(s.history, historyEntry{
		description: description,
		data:        s.data,
		version:     s.version,
	})
}

// CanUndo returns true if there are operations to undo.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// UndoCount returns the number of operations that can be undone.
func (s *Store) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Undo reverts the last operation and returns its description.
func (s *Store) Undo() (string, error) {
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return "", ErrNothingToUndo
	}
	entry := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.data = entry.data
	s.version = entry.version
	listeners := s.listenerList()
	s.mu.Unlock()

	s.notify(listeners, entry.data)
	return entry.description, nil
}

// Version identifies the current state. It changes on every transition and
// is restored by Undo.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// HasChanges returns true if the current state differs from the last saved one.
func (s *Store) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version != s.saved
}

// MarkSaved records version as persisted.
func (s *Store) MarkSaved(version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = version
}

// Save persists the current schedule through repo and marks it saved.
func (s *Store) Save(ctx context.Context, repo schedule.Repository) error {
	if repo == nil {
		return ErrNoRepository
	}
	s.mu.Lock()
	snapshot := s.data.Clone()
	version := s.version
	s.mu.Unlock()

	if err := repo.SaveSchedule(ctx, snapshot); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	s.MarkSaved(version)
	return nil
}

// Subscribe registers fn to run after every transition.
// The returned function removes the registration.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// listenerList returns the listeners in registration order. Caller holds mu.
func (s *Store) listenerList() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	result := make([]Listener, len(ids))
	for i, id := range ids {
		result[i] = s.listeners[id]
	}
	return result
}

func (s *Store) notify(listeners []Listener, data *schedule.Data) {
	if len(listeners) == 0 {
		return
	}
	snapshot := data.Clone()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// ensure returns the index of the auditorium entry, appending one if missing.
func ensure(d *schedule.Data, auditoriumID string) int {
	for i, a := range d.Auditoriums {
		if a.AuditoriumID == auditoriumID {
			return i
		}
	}
	d.Auditoriums = append(d.Auditoriums, schedule.AuditoriumSchedule{AuditoriumID: auditoriumID})
	return len(d.Auditoriums) - 1
}

// locate returns the auditorium and slot indexes, or j = -1 when absent.
func locate(d *schedule.Data, auditoriumID, slotID string) (i, j int) {
	for i, a := range d.Auditoriums {
		if a.AuditoriumID != auditoriumID {
			continue
		}
		for j, sl := range a.Slots {
			if sl.ID == slotID {
				return i, j
			}
		}
		return i, -1
	}
	return -1, -1
}

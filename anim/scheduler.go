package anim

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

const DefaultBudget = 4

// Slot is one admitted animation.
type Slot struct {
	Source     string
	Kind       Kind
	AdmittedAt uint64
}

// Scheduler is the admission controller over a bounded pool of concurrently
// playing animations. At most one slot exists per source. It is not safe for
// concurrent use; the owning session loop serialises all calls.
type Scheduler struct {
	budget int
	slots  map[string]*Slot
	clock  uint64

	// OnEvict, when set, is called for every slot removed by eviction.
	OnEvict func(Slot)
}

func NewScheduler(budget int) *Scheduler {
	if budget < 1 {
		budget = DefaultBudget
	}
	return &Scheduler{
		budget: budget,
		slots:  make(map[string]*Slot),
	}
}

func (s *Scheduler) tick() uint64 {
	s.clock++
	return s.clock
}

func (s *Scheduler) Budget() int {
	return s.budget
}

// SetBudget changes the pool size and evicts down to it.
func (s *Scheduler) SetBudget(budget int) {
	if budget < 1 {
		budget = 1
	}
	s.budget = budget
	s.EnforceBudget()
}

// Admit starts or updates the animation for source. An existing slot is
// updated in place, which is also how an in-flight contraction is cancelled
// by a fresh expansion. Returns false when the pool is full and nothing may
// be evicted for kind; the animation is then simply not played.
func (s *Scheduler) Admit(source string, kind Kind) bool {
	defer s.EnforceBudget()

	if slot, found := s.slots[source]; found {
		slot.Kind = kind
		slot.AdmittedAt = s.tick()
		return true
	}
	if len(s.slots) >= s.budget && !s.MakeRoom(kind) {
		log.WithFields(log.Fields{"source": source, "kind": kind.Name()}).
			Debug("animation dropped, pool full")
		return false
	}
	s.slots[source] = &Slot{Source: source, Kind: kind, AdmittedAt: s.tick()}
	return true
}

// MakeRoom evicts the oldest slot of the lowest tier that incoming may
// displace.
func (s *Scheduler) MakeRoom(incoming Kind) bool {
	victim := s.victim(func(k Kind) bool { return mayEvict(incoming, k) })
	if victim == nil {
		return false
	}
	s.evict(victim)
	return true
}

// Release removes the slot for source, if any.
func (s *Scheduler) Release(source string) {
	if _, found := s.slots[source]; !found {
		return
	}
	delete(s.slots, source)
	s.EnforceBudget()
}

// EnforceBudget evicts by priority until the pool fits the budget.
func (s *Scheduler) EnforceBudget() {
	for len(s.slots) > s.budget {
		victim := s.victim(func(Kind) bool { return true })
		if victim == nil {
			return
		}
		log.WithFields(log.Fields{"source": victim.Source, "kind": victim.Kind.Name()}).
			Debug("animation pool over budget")
		s.evict(victim)
	}
}

func (s *Scheduler) victim(eligible func(Kind) bool) *Slot {
	var best *Slot
	for _, slot := range s.slots {
		if !eligible(slot.Kind) {
			continue
		}
		if best == nil ||
			slot.Kind < best.Kind ||
			slot.Kind == best.Kind && slot.AdmittedAt < best.AdmittedAt {
			best = slot
		}
	}
	return best
}

func (s *Scheduler) evict(slot *Slot) {
	delete(s.slots, slot.Source)
	log.WithFields(log.Fields{"source": slot.Source, "kind": slot.Kind.Name()}).Debug("animation evicted")
	if s.OnEvict != nil {
		s.OnEvict(*slot)
	}
}

func (s *Scheduler) Slot(source string) (Slot, bool) {
	slot, found := s.slots[source]
	if !found {
		return Slot{}, false
	}
	return *slot, true
}

func (s *Scheduler) Len() int {
	return len(s.slots)
}

// Slots returns a copy of the live slots ordered by admission.
func (s *Scheduler) Slots() []Slot {
	out := make([]Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdmittedAt < out[j].AdmittedAt })
	return out
}

// Snapshot is the read-only view handed to renderers.
func (s *Scheduler) Snapshot() map[string]Kind {
	out := make(map[string]Kind, len(s.slots))
	for source, slot := range s.slots {
		out[source] = slot.Kind
	}
	return out
}

package anim

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Durations are animation lengths in seconds per kind.
type Durations map[Kind]float32

func DefaultDurations() Durations {
	return Durations{
		KindIdle:        1.2,
		KindBackground:  4,
		KindContraction: 0.35,
		KindExpansion:   0.45,
	}
}

type track struct {
	kind  Kind
	tween *gween.Tween
	value float32
	done  bool
}

// Timeline plays the slots a renderer received from the scheduler. Each
// source gets a tween whose value is the visible progress of its animation:
// expansions run towards 1 and hold, contractions run back towards 0 and then
// report as ended, idle and background animations loop.
type Timeline struct {
	durations Durations
	tracks    map[string]*track
}

func NewTimeline(durations Durations) *Timeline {
	if durations == nil {
		durations = DefaultDurations()
	}
	return &Timeline{
		durations: durations,
		tracks:    make(map[string]*track),
	}
}

func (t *Timeline) duration(kind Kind) float32 {
	d, ok := t.durations[kind]
	if !ok || d <= 0 {
		d = DefaultDurations()[kind]
	}
	if d <= 0 {
		d = 0.3
	}
	return d
}

// Sync aligns the tracks with the latest slot snapshot. A source whose kind
// changed restarts from its current value, so a contraction interrupting a
// half-played expansion reverses from where it was.
func (t *Timeline) Sync(slots map[string]Kind) {
	for source, kind := range slots {
		tr, found := t.tracks[source]
		if found && tr.kind == kind {
			continue
		}
		var from float32
		if found {
			from = tr.value
		}
		t.tracks[source] = t.start(kind, from)
	}
	for source := range t.tracks {
		if _, live := slots[source]; !live {
			delete(t.tracks, source)
		}
	}
}

func (t *Timeline) start(kind Kind, from float32) *track {
	d := t.duration(kind)
	tr := &track{kind: kind, value: from}
	switch kind {
	case KindContraction:
		if from <= 0 {
			from = 1
		}
		tr.value = from
		tr.tween = gween.New(from, 0, d*from, ease.InQuad)
	case KindExpansion:
		if from >= 1 {
			tr.value = 1
			tr.done = true
			return tr
		}
		tr.tween = gween.New(from, 1, d*(1-from), ease.OutQuad)
	default:
		tr.value = 0
		tr.tween = gween.New(0, 1, d, ease.Linear)
	}
	return tr
}

// Update advances every track by dt seconds and returns the sources whose
// contraction finished during this step, sorted.
func (t *Timeline) Update(dt float32) []string {
	var ended []string
	for source, tr := range t.tracks {
		if tr.done {
			continue
		}
		v, finished := tr.tween.Update(dt)
		tr.value = v
		if !finished {
			continue
		}
		switch tr.kind {
		case KindContraction:
			tr.done = true
			ended = append(ended, source)
		case KindExpansion:
			tr.done = true
		default:
			tr.tween.Reset()
		}
	}
	sort.Strings(ended)
	return ended
}

// Progress returns the current value and kind of the source's animation.
func (t *Timeline) Progress(source string) (float32, Kind, bool) {
	tr, found := t.tracks[source]
	if !found {
		return 0, KindNone, false
	}
	return tr.value, tr.kind, true
}

func (t *Timeline) Len() int {
	return len(t.tracks)
}

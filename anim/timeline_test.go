package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneSecond() Durations {
	return Durations{
		KindIdle:        1,
		KindBackground:  1,
		KindContraction: 1,
		KindExpansion:   1,
	}
}

func TestTimelineExpansionHolds(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"r1": KindExpansion})

	assert.Empty(t, tl.Update(0.5))
	v, kind, ok := tl.Progress("r1")
	require.True(t, ok)
	assert.Equal(t, KindExpansion, kind)
	assert.True(t, v > 0 && v < 1, "progress %v", v)

	assert.Empty(t, tl.Update(0.6))
	v, _, _ = tl.Progress("r1")
	assert.InDelta(t, 1, v, 1e-4)

	assert.Empty(t, tl.Update(5))
	v, _, _ = tl.Progress("r1")
	assert.InDelta(t, 1, v, 1e-4)
}

func TestTimelineContractionEndsOnce(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"r1": KindExpansion})
	tl.Update(2)

	tl.Sync(map[string]Kind{"r1": KindContraction})
	assert.Empty(t, tl.Update(0.5))
	assert.Equal(t, []string{"r1"}, tl.Update(0.6))
	assert.Empty(t, tl.Update(1))

	v, kind, _ := tl.Progress("r1")
	assert.Equal(t, KindContraction, kind)
	assert.InDelta(t, 0, v, 1e-4)

	tl.Sync(map[string]Kind{})
	assert.Equal(t, 0, tl.Len())
}

func TestTimelineContractionReversesFromCurrentValue(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"g1": KindExpansion})
	tl.Update(0.3)
	mid, _, _ := tl.Progress("g1")
	require.True(t, mid > 0 && mid < 1)

	tl.Sync(map[string]Kind{"g1": KindContraction})
	v, _, _ := tl.Progress("g1")
	assert.InDelta(t, mid, v, 1e-6)

	// a shorter reverse: duration scales with the distance left
	assert.Equal(t, []string{"g1"}, tl.Update(mid+0.01))
}

func TestTimelineLateContractionStartsFull(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"b1": KindContraction})
	v, _, ok := tl.Progress("b1")
	require.True(t, ok)
	assert.InDelta(t, 1, v, 1e-6)
	assert.Equal(t, []string{"b1"}, tl.Update(1.01))
}

func TestTimelineLoops(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"bg": KindBackground, "r2": KindIdle})
	for i := 0; i < 10; i++ {
		assert.Empty(t, tl.Update(0.4))
	}
	assert.Equal(t, 2, tl.Len())
	_, _, ok := tl.Progress("missing")
	assert.False(t, ok)
}

func TestTimelineSortsEnded(t *testing.T) {
	tl := NewTimeline(oneSecond())
	tl.Sync(map[string]Kind{"y1": KindContraction, "b1": KindContraction, "g1": KindContraction})
	assert.Equal(t, []string{"b1", "g1", "y1"}, tl.Update(2))
}

func TestTimelineDefaultDurations(t *testing.T) {
	tl := NewTimeline(nil)
	tl.Sync(map[string]Kind{"r1": KindExpansion})
	assert.Empty(t, tl.Update(0.1))
	assert.Empty(t, tl.Update(1))
	v, _, _ := tl.Progress("r1")
	assert.InDelta(t, 1, v, 1e-4)
}

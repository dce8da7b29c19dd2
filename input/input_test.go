package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	th := Thresholds{MobileMaxWidth: 768}
	tests := []struct {
		name string
		sig  Signal
		want bool
	}{
		{"narrow viewport", Signal{ViewportWidth: 390}, true},
		{"boundary", Signal{ViewportWidth: 768}, true},
		{"wide desktop", Signal{ViewportWidth: 1920, UserAgent: "Mozilla/5.0 (X11; Linux x86_64)"}, false},
		{"wide touch tablet", Signal{ViewportWidth: 1024, Touch: true, UserAgent: "Mozilla/5.0 (iPad; CPU OS 17_0)"}, true},
		{"touch laptop", Signal{ViewportWidth: 1440, Touch: true, UserAgent: "Mozilla/5.0 (Windows NT 10.0)"}, false},
		{"mobile agent without touch", Signal{ViewportWidth: 1200, UserAgent: "Android"}, false},
		{"unknown width", Signal{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sig, th).Mobile)
		})
	}
}

func TestClassifyDefaultThresholds(t *testing.T) {
	assert.True(t, Classify(Signal{ViewportWidth: 500}, Thresholds{}).Mobile)
	assert.Equal(t, "mobile", Device{Mobile: true}.Name())
	assert.Equal(t, "desktop", Device{}.Name())
}

func TestAdapterDesktop(t *testing.T) {
	a := NewAdapter(Device{})
	assert.Equal(t, []Intent{Enter{Tile: "r1"}}, a.Pointer(PointerEvent{Action: Hover, Tile: "r1"}))
	assert.Equal(t, []Intent{Leave{Tile: "r1"}}, a.Pointer(PointerEvent{Action: Unhover, Tile: "r1"}))
	assert.Equal(t, []Intent{Tap{Tile: "r2", Direct: true}}, a.Pointer(PointerEvent{Action: Press, Tile: "r2"}))
	assert.Nil(t, a.Pointer(PointerEvent{Action: Hover}))
	assert.Nil(t, a.Pointer(PointerEvent{Action: PointerAction(9), Tile: "r1"}))
}

func TestAdapterMobile(t *testing.T) {
	a := NewAdapter(Device{Mobile: true})
	assert.Nil(t, a.Pointer(PointerEvent{Action: Hover, Tile: "r1"}))
	assert.Nil(t, a.Pointer(PointerEvent{Action: Unhover, Tile: "r1"}))
	assert.Equal(t, []Intent{Tap{Tile: "r1"}}, a.Pointer(PointerEvent{Action: Press, Tile: "r1"}))
	assert.True(t, a.Device().Mobile)
}

func TestResolveTap(t *testing.T) {
	tests := []struct {
		expanded, targets, page bool
		want                    TapOutcome
	}{
		{false, true, false, TapExpand},
		{false, true, true, TapExpand},
		{true, true, true, TapNavigate},
		{true, true, false, TapNone},
		{false, false, true, TapNavigate},
		{true, false, true, TapNavigate},
		{false, false, false, TapNone},
	}
	for _, tt := range tests {
		got := ResolveTap(tt.expanded, tt.targets, tt.page)
		assert.Equal(t, tt.want, got, "expanded=%v targets=%v page=%v", tt.expanded, tt.targets, tt.page)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "EXPAND", TapExpand.Name())
	assert.Equal(t, "N/A(7)", TapOutcome(7).Name())
	assert.Equal(t, "PRESS", Press.Name())
	assert.Equal(t, "click(r1)", Tap{Tile: "r1", Direct: true}.String())
	assert.Equal(t, "tap(r1)", Tap{Tile: "r1"}.String())
	assert.Equal(t, "enter(g2)", Enter{Tile: "g2"}.String())
	assert.Equal(t, "leave(g2)", Leave{Tile: "g2"}.String())
}

package anim

import "fmt"

// Kind is what a slot is playing. The numeric order is the eviction
// priority: lower kinds are evicted first.
type Kind int

const (
	KindNone Kind = iota
	KindIdle
	KindBackground
	KindContraction
	KindExpansion
)

func (k Kind) Name() string {
	switch k {
	case KindIdle:
		return "tile-idle"
	case KindBackground:
		return "background"
	case KindContraction:
		return "contraction"
	case KindExpansion:
		return "expansion"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

func (k Kind) String() string {
	return k.Name()
}

// ParseKind maps asset descriptor kinds onto Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "tile-idle", "idle":
		return KindIdle, true
	case "background":
		return KindBackground, true
	case "contraction":
		return KindContraction, true
	case "expansion":
		return KindExpansion, true
	}
	return KindNone, false
}

// mayEvict reports whether a slot of kind victim may be evicted to admit
// incoming. Every tier gives way except expansion, which only gives way to
// another expansion.
func mayEvict(incoming, victim Kind) bool {
	return victim != KindExpansion || incoming == KindExpansion
}

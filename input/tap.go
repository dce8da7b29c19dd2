package input

import "fmt"

// TapOutcome is what a mobile tap resolves to.
type TapOutcome int

const (
	TapNone TapOutcome = iota
	TapExpand
	TapNavigate
)

func (o TapOutcome) Name() string {
	switch o {
	case TapNone:
		return "NONE"
	case TapExpand:
		return "EXPAND"
	case TapNavigate:
		return "NAVIGATE"
	default:
		return fmt.Sprintf("N/A(%d)", o)
	}
}

// ResolveTap disambiguates a single tap: the first tap on an expandable tile
// expands it, the next one navigates; a tile without expansion navigates
// straight away when it has a page.
func ResolveTap(isExpanded, hasTargets, hasPage bool) TapOutcome {
	switch {
	case hasTargets && !isExpanded:
		return TapExpand
	case hasPage:
		return TapNavigate
	default:
		return TapNone
	}
}

package input

import "strings"

// Signal is what a client reports about itself when it connects.
type Signal struct {
	ViewportWidth int
	Touch         bool
	UserAgent     string
}

// Thresholds tune device classification.
type Thresholds struct {
	// MobileMaxWidth is the widest viewport still treated as mobile.
	MobileMaxWidth int
}

func DefaultThresholds() Thresholds {
	return Thresholds{MobileMaxWidth: 768}
}

// Device is the classification made once per session.
type Device struct {
	Mobile bool
}

func (d Device) Name() string {
	if d.Mobile {
		return "mobile"
	}
	return "desktop"
}

var mobileAgents = []string{"android", "iphone", "ipad", "ipod", "mobile"}

// Classify decides once whether the session behaves as mobile. A narrow
// viewport alone is enough; a wide one is mobile only when the client has a
// touch screen and a mobile user agent.
func Classify(sig Signal, th Thresholds) Device {
	if th.MobileMaxWidth <= 0 {
		th = DefaultThresholds()
	}
	if sig.ViewportWidth > 0 && sig.ViewportWidth <= th.MobileMaxWidth {
		return Device{Mobile: true}
	}
	if !sig.Touch {
		return Device{}
	}
	ua := strings.ToLower(sig.UserAgent)
	for _, a := range mobileAgents {
		if strings.Contains(ua, a) {
			return Device{Mobile: true}
		}
	}
	return Device{}
}

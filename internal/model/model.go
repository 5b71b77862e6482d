package model

// Presence is the binary availability read from the presence API.
type Presence string

const (
	PresenceActive Presence = "active"
	PresenceAway   Presence = "away"
)

// FromAPI maps the raw presence string to a Presence. Anything but the
// literal "active" is Away.
func FromAPI(raw string) Presence {
	if raw == string(PresenceActive) {
		return PresenceActive
	}
	return PresenceAway
}

func (p Presence) Active() bool {
	return p == PresenceActive
}

// Color is a 24-bit RGB value.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

var (
	Black = Color{}
	Red   = Color{R: 255}
	Green = Color{G: 255}
)

type GPIOPin struct {
	Number     int
	ActiveHigh bool
}

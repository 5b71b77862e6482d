package gpio

import (
	"fmt"
	"sync"

	"github.com/thatsimonsguy/presence-matrix/internal/model"
	"github.com/thatsimonsguy/presence-matrix/internal/pinctrl"
)

var safeMode bool

var (
	setPin    = pinctrl.SetPin
	readLevel = pinctrl.ReadLevel
)

func SetSafeMode(enabled bool) {
	safeMode = enabled
}

func Activate(pin model.GPIOPin) error {
	if safeMode {
		return nil
	}
	if err := setPin(pin.Number, "op", "pn", drive(pin, true)); err != nil {
		return fmt.Errorf("failed to activate pin %d: %w", pin.Number, err)
	}
	return nil
}

func Deactivate(pin model.GPIOPin) error {
	if safeMode {
		return nil
	}
	if err := setPin(pin.Number, "op", "pn", drive(pin, false)); err != nil {
		return fmt.Errorf("failed to deactivate pin %d: %w", pin.Number, err)
	}
	return nil
}

func CurrentlyActive(pin model.GPIOPin) (bool, error) {
	level, err := readLevel(pin.Number)
	if err != nil {
		return false, err
	}
	return pin.ActiveHigh == level, nil
}

func drive(pin model.GPIOPin, active bool) string {
	if pin.ActiveHigh == active {
		return "dh"
	}
	return "dl"
}

// StatusLED is the liveness indicator toggled by the heartbeat.
type StatusLED struct {
	mu  sync.Mutex
	pin model.GPIOPin
	on  bool
}

func NewStatusLED(pin model.GPIOPin) *StatusLED {
	return &StatusLED{pin: pin}
}

func (l *StatusLED) Pin() model.GPIOPin {
	return l.pin
}

// Toggle flips the LED and returns the new state. The state flips even when
// the write fails so the next heartbeat retries the opposite level.
func (l *StatusLED) Toggle() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.on = !l.on
	return l.on, l.write()
}

func (l *StatusLED) Set(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.on = on
	return l.write()
}

func (l *StatusLED) Off() error {
	return l.Set(false)
}

func (l *StatusLED) write() error {
	if l.on {
		return Activate(l.pin)
	}
	return Deactivate(l.pin)
}

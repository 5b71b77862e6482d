package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/presence-matrix/internal/model"
)

type pinCall struct {
	pin   int
	drive string
}

func mockPins(t *testing.T, err error) *[]pinCall {
	t.Helper()
	var calls []pinCall
	origSet, origRead := setPin, readLevel
	setPin = func(pin int, opts ...string) error {
		calls = append(calls, pinCall{pin: pin, drive: opts[len(opts)-1]})
		return err
	}
	t.Cleanup(func() {
		setPin, readLevel = origSet, origRead
		SetSafeMode(false)
	})
	return &calls
}

func TestActivateDeactivate(t *testing.T) {
	calls := mockPins(t, nil)

	high := model.GPIOPin{Number: 17, ActiveHigh: true}
	low := model.GPIOPin{Number: 27, ActiveHigh: false}

	require.NoError(t, Activate(high))
	require.NoError(t, Deactivate(high))
	require.NoError(t, Activate(low))
	require.NoError(t, Deactivate(low))

	assert.Equal(t, []pinCall{{17, "dh"}, {17, "dl"}, {27, "dl"}, {27, "dh"}}, *calls)
}

func TestSafeModeSkipsWrites(t *testing.T) {
	calls := mockPins(t, nil)
	SetSafeMode(true)

	require.NoError(t, Activate(model.GPIOPin{Number: 17, ActiveHigh: true}))
	assert.Empty(t, *calls)
}

func TestStatusLED_Toggle(t *testing.T) {
	calls := mockPins(t, nil)
	led := NewStatusLED(model.GPIOPin{Number: 17, ActiveHigh: true})

	on, err := led.Toggle()
	require.NoError(t, err)
	assert.True(t, on)

	on, err = led.Toggle()
	require.NoError(t, err)
	assert.False(t, on)

	assert.Equal(t, []pinCall{{17, "dh"}, {17, "dl"}}, *calls)
}

func TestStatusLED_ToggleFailureStillFlips(t *testing.T) {
	mockPins(t, errors.New("pinctrl missing"))
	led := NewStatusLED(model.GPIOPin{Number: 17, ActiveHigh: true})

	on, err := led.Toggle()
	assert.Error(t, err)
	assert.True(t, on)

	on, _ = led.Toggle()
	assert.False(t, on)
}

func TestCurrentlyActive(t *testing.T) {
	mockPins(t, nil)
	readLevel = func(pin int) (bool, error) { return false, nil }

	active, err := CurrentlyActive(model.GPIOPin{Number: 27, ActiveHigh: false})
	require.NoError(t, err)
	assert.True(t, active)

	active, err = CurrentlyActive(model.GPIOPin{Number: 17, ActiveHigh: true})
	require.NoError(t, err)
	assert.False(t, active)
}

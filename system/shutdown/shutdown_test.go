package shutdown

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDisplay struct {
	blanked bool
	err     error
}

func (d *fakeDisplay) Blank() error {
	d.blanked = true
	return d.err
}

type fakeLED struct {
	off bool
}

func (l *fakeLED) Off() error {
	l.off = true
	return nil
}

func TestShutdown(t *testing.T) {
	code := -1
	ExitFunc = func(c int) { code = c }
	defer func() { ExitFunc = os.Exit }()

	d, l := &fakeDisplay{}, &fakeLED{}
	Shutdown(d, l)

	assert.True(t, d.blanked)
	assert.True(t, l.off)
	assert.Equal(t, 0, code)
}

func TestShutdownWithError_BlankFailureStillExits(t *testing.T) {
	code := -1
	ExitFunc = func(c int) { code = c }
	defer func() { ExitFunc = os.Exit }()

	d, l := &fakeDisplay{err: errors.New("device gone")}, &fakeLED{}
	ShutdownWithError(errors.New("boom"), "Scheduler failed", d, l)

	assert.True(t, l.off)
	assert.Equal(t, 1, code)
}

type fakeCloser struct {
	closed int
}

func (c *fakeCloser) Close() error {
	c.closed++
	return errors.New("already closed")
}

func TestShutdown_ClosesResources(t *testing.T) {
	code := -1
	ExitFunc = func(c int) { code = c }
	defer func() { ExitFunc = os.Exit }()

	first, second := &fakeCloser{}, &fakeCloser{}
	Shutdown(&fakeDisplay{}, &fakeLED{}, first, second)

	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)
	assert.Equal(t, 0, code)

	third := &fakeCloser{}
	ShutdownWithError(errors.New("boom"), "Scheduler failed", &fakeDisplay{}, &fakeLED{}, third)
	assert.Equal(t, 1, third.closed)
	assert.Equal(t, 1, code)
}

// Package network reports and establishes the wireless association the
// presence poll depends on. Association itself is the OS's job; this package
// asks iwgetid and NetworkManager about it.
package network

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Link reports whether the device currently has a usable network association.
type Link interface {
	Associated() bool
}

var run = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

type WiFi struct {
	Interface string
	SSID      string
	Password  string
}

func NewWiFi(iface, ssid, password string) *WiFi {
	return &WiFi{Interface: iface, SSID: ssid, Password: password}
}

// CurrentSSID returns the SSID the interface is associated with, or "" if none.
func (w *WiFi) CurrentSSID() (string, error) {
	out, err := run("iwgetid", "-r", w.Interface)
	if err != nil {
		// iwgetid exits non-zero when the interface is not associated
		return "", fmt.Errorf("iwgetid %s failed: %w", w.Interface, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Associated is true when the interface is joined to the configured SSID, or
// to any network when no SSID is configured.
func (w *WiFi) Associated() bool {
	ssid, err := w.CurrentSSID()
	if err != nil {
		log.Debug().Err(err).Str("interface", w.Interface).Msg("No wireless association")
		return false
	}
	if ssid == "" {
		return false
	}
	if w.SSID == "" {
		return true
	}
	return ssid == w.SSID
}

// Join asks NetworkManager to associate the interface with the configured network.
func (w *WiFi) Join() error {
	if w.SSID == "" {
		return fmt.Errorf("no SSID configured")
	}

	args := []string{"dev", "wifi", "connect", w.SSID}
	if w.Password != "" {
		args = append(args, "password", w.Password)
	}
	args = append(args, "ifname", w.Interface)

	out, err := run("nmcli", args...)
	if err != nil {
		return fmt.Errorf("nmcli connect failed: %s (output: %s)", err, strings.TrimSpace(string(out)))
	}

	log.Info().Str("ssid", w.SSID).Str("interface", w.Interface).Msg("Joined wireless network")
	return nil
}

package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(nil)

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "wlan0", cfg.Interface)
	assert.Equal(t, 17, cfg.LEDPin.Number)
	assert.True(t, cfg.LEDPin.ActiveHigh)
	assert.Equal(t, uint8(DefaultBrightness), cfg.Brightness)
	assert.Equal(t, HeartbeatIntervalMs, cfg.HeartbeatIntervalMs)
	assert.Equal(t, PollIntervalMs, cfg.PollIntervalMs)
	assert.Equal(t, DefaultEndpoint, cfg.Credentials.Endpoint)
	assert.Equal(t, byte(0xC1), cfg.Credentials.Fingerprint[0])
	assert.Equal(t, byte(0xB3), cfg.Credentials.Fingerprint[19])
	assert.Nil(t, cfg.DDTags)
}

func TestLoad_Flags(t *testing.T) {
	cfg := Load([]string{
		"-log-level", "debug",
		"-interface", "wlp2s0",
		"-led-pin", "4",
		"-led-active-high=false",
		"-safe-mode",
		"-brightness", "64",
		"-dd-agent", "127.0.0.1:8125",
		"-dd-tags", "env:home,room:office",
	})

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "wlp2s0", cfg.Interface)
	assert.Equal(t, 4, cfg.LEDPin.Number)
	assert.False(t, cfg.LEDPin.ActiveHigh)
	assert.True(t, cfg.SafeMode)
	assert.Equal(t, uint8(64), cfg.Brightness)
	assert.Equal(t, "127.0.0.1:8125", cfg.DDAgentAddr)
	assert.Equal(t, []string{"env:home", "room:office"}, cfg.DDTags)
}

func TestLoad_InvalidBrightness(t *testing.T) {
	assert.Panics(t, func() { Load([]string{"-brightness", "300"}) })
}

func TestLoad_EmptyInterface(t *testing.T) {
	assert.Panics(t, func() { Load([]string{"-interface", ""}) })
}

func TestLoad_CredentialsNotFlags(t *testing.T) {
	for _, name := range []string{"-bot-token", "-user-id", "-fingerprint", "-wifi-ssid", "-wifi-password", "-endpoint", "-poll-interval"} {
		assert.Panics(t, func() { Load([]string{name, "x"}) }, name)
	}
}

func TestNewCredentials(t *testing.T) {
	creds, err := newCredentials(DefaultEndpoint, "xoxb-1", "U123", Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, "xoxb-1", creds.BotToken)
	assert.Equal(t, "U123", creds.UserID)

	_, err = newCredentials(DefaultEndpoint, "", "", Fingerprint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BotToken, UserID")

	_, err = newCredentials(DefaultEndpoint, "xoxb-1", "U123", "C1:0D")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, parseLogLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("verbose"))
}

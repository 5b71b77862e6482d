package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thatsimonsguy/presence-matrix/internal/model"
	"github.com/thatsimonsguy/presence-matrix/internal/pinning"
)

// Build-time credentials. Override with
//
//	go build -ldflags "-X github.com/thatsimonsguy/presence-matrix/internal/config.BotToken=xoxb-..."
var (
	WiFiSSID     = "your-wifi-ssid"
	WiFiPassword = "your-wifi-password"
	BotToken     = "your-bot-token"
	UserID       = "your-user-id"
	Fingerprint  = "C1:0D:53:49:D2:3E:E5:2B:A2:61:D5:9E:6F:99:0D:3D:FD:8B:B2:B3"
	NtfyTopic    = ""
)

const (
	DefaultEndpoint = "https://slack.com/api/users.getPresence?token=%s&user=%s&pretty=1"

	HeartbeatIntervalMs uint32 = 1000
	PollIntervalMs      uint32 = 10000

	DefaultBrightness = 20
)

// Credentials identify the presence endpoint, the user being watched and the
// certificate the endpoint must present. Fixed for the life of the process.
type Credentials struct {
	Endpoint    string
	BotToken    string
	UserID      string
	Fingerprint pinning.Fingerprint
}

type Config struct {
	LogLevel zerolog.Level
	LogFile  string

	Interface    string
	WiFiSSID     string
	WiFiPassword string

	LEDPin   model.GPIOPin
	SafeMode bool

	MatrixDevice string
	Brightness   uint8

	DDAgentAddr string
	DDNamespace string
	DDTags      []string

	NtfyTopic string

	HeartbeatIntervalMs uint32
	PollIntervalMs      uint32

	Credentials Credentials
}

// BuildCredentials returns the credentials compiled into the binary.
// It panics if they are unusable.
func BuildCredentials() Credentials {
	creds, err := newCredentials(DefaultEndpoint, BotToken, UserID, Fingerprint)
	if err != nil {
		panic("Invalid build-time credentials: " + err.Error())
	}
	return creds
}

func newCredentials(endpoint, token, user, fingerprint string) (Credentials, error) {
	var missing []string
	if token == "" {
		missing = append(missing, "BotToken")
	}
	if user == "" {
		missing = append(missing, "UserID")
	}
	if fingerprint == "" {
		missing = append(missing, "Fingerprint")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	fp, err := pinning.ParseFingerprint(fingerprint)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		Endpoint:    endpoint,
		BotToken:    token,
		UserID:      user,
		Fingerprint: fp,
	}, nil
}

// Load parses the operational flags from args and combines them with the
// build-time credentials. It panics on invalid configuration.
func Load(args []string) Config {
	cfg := Config{
		WiFiSSID:            WiFiSSID,
		WiFiPassword:        WiFiPassword,
		NtfyTopic:           NtfyTopic,
		HeartbeatIntervalMs: HeartbeatIntervalMs,
		PollIntervalMs:      PollIntervalMs,
		Credentials:         BuildCredentials(),
	}

	var (
		logLevel   string
		brightness uint
		ddTags     string
	)

	fs := flag.NewFlagSet("presence-matrix", flag.ContinueOnError)
	fs.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Append logs to this file instead of the console")
	fs.StringVar(&cfg.Interface, "interface", "wlan0", "Wireless interface used for the presence API")
	fs.IntVar(&cfg.LEDPin.Number, "led-pin", 17, "GPIO number of the status LED")
	fs.BoolVar(&cfg.LEDPin.ActiveHigh, "led-active-high", true, "Status LED lights when the pin is driven high")
	fs.BoolVar(&cfg.SafeMode, "safe-mode", false, "Disable all GPIO writes")
	fs.StringVar(&cfg.MatrixDevice, "matrix-device", "", "Device path that receives raw GRB frames; empty logs frames instead")
	fs.UintVar(&brightness, "brightness", DefaultBrightness, "Matrix brightness (0-255)")
	fs.StringVar(&cfg.DDAgentAddr, "dd-agent", "", "DogStatsD address; empty disables metrics")
	fs.StringVar(&cfg.DDNamespace, "dd-namespace", "presence_matrix.", "DogStatsD metric namespace")
	fs.StringVar(&ddTags, "dd-tags", "", "Comma separated DogStatsD tags")
	if err := fs.Parse(args); err != nil {
		panic("Failed to parse flags: " + err.Error())
	}

	cfg.LogLevel = parseLogLevel(logLevel)
	if ddTags != "" {
		cfg.DDTags = strings.Split(ddTags, ",")
	}
	if brightness > 255 {
		panic(fmt.Sprintf("Brightness %d out of range (0-255)", brightness))
	}
	cfg.Brightness = uint8(brightness)

	cfg.validate()
	return cfg
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	if cfg.Interface == "" {
		problems = append(problems, "interface must not be empty")
	}
	if cfg.LEDPin.Number < 0 {
		problems = append(problems, fmt.Sprintf("led-pin %d is not a GPIO number", cfg.LEDPin.Number))
	}
	if cfg.HeartbeatIntervalMs == 0 || cfg.PollIntervalMs == 0 {
		problems = append(problems, "intervals must be positive")
	}

	if len(problems) > 0 {
		panic("Invalid configuration: " + strings.Join(problems, "; "))
	}
}

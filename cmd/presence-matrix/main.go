package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/presence-matrix/internal/app"
	"github.com/thatsimonsguy/presence-matrix/internal/config"
	"github.com/thatsimonsguy/presence-matrix/internal/datadog"
	"github.com/thatsimonsguy/presence-matrix/internal/gpio"
	"github.com/thatsimonsguy/presence-matrix/internal/icons"
	"github.com/thatsimonsguy/presence-matrix/internal/logging"
	"github.com/thatsimonsguy/presence-matrix/internal/matrix"
	"github.com/thatsimonsguy/presence-matrix/internal/network"
	"github.com/thatsimonsguy/presence-matrix/internal/notifications"
	"github.com/thatsimonsguy/presence-matrix/internal/presence"
	"github.com/thatsimonsguy/presence-matrix/internal/renderer"
	"github.com/thatsimonsguy/presence-matrix/internal/scheduler"
	"github.com/thatsimonsguy/presence-matrix/system/shutdown"
)

func main() {
	cfg := config.Load(os.Args[1:])
	logFile := logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("interface", cfg.Interface).
		Int("led_pin", cfg.LEDPin.Number).
		Str("fingerprint", cfg.Credentials.Fingerprint.String()).
		Msg("Starting presence matrix")

	gpio.SetSafeMode(cfg.SafeMode)
	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED - GPIO writes are disabled")
	}

	metrics := datadog.New(cfg.DDAgentAddr, cfg.DDNamespace, cfg.DDTags)
	led := gpio.NewStatusLED(cfg.LEDPin)

	var sink matrix.Sink = matrix.LogSink{}
	if cfg.MatrixDevice != "" {
		sink = matrix.DeviceSink{Path: cfg.MatrixDevice}
	}
	display := matrix.NewBuffer(cfg.Brightness, sink)
	if err := display.Blank(); err != nil {
		log.Warn().Err(err).Msg("Failed to blank matrix at startup")
	}

	link := network.NewWiFi(cfg.Interface, cfg.WiFiSSID, cfg.WiFiPassword)
	if !link.Associated() {
		if err := link.Join(); err != nil {
			log.Warn().Err(err).Msg("Could not join wireless network, polls will show away until it is up")
		}
	}

	opts := []presence.Option{presence.WithMetrics(metrics)}
	if n := notifications.New(cfg.NtfyTopic); n != nil {
		opts = append(opts, presence.WithNotifier(n))
	}
	fetcher := presence.NewFetcher(cfg.Credentials, link, opts...)

	a := app.New(
		app.Intervals{HeartbeatMs: cfg.HeartbeatIntervalMs, PollMs: cfg.PollIntervalMs},
		scheduler.NewMonotonicClock(),
		led,
		fetcher,
		renderer.New(display, icons.Default()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := a.Run(ctx)
	if closeErr := metrics.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("Failed to flush metrics")
	}
	if err != nil {
		shutdown.ShutdownWithError(err, "Scheduler loop failed", display, led, logFile)
	}
	shutdown.Shutdown(display, led, logFile)
}

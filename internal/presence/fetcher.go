// Package presence polls the users.getPresence endpoint and reduces the
// answer to model.Presence. Every failure yields PresenceAway.
package presence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/presence-matrix/internal/config"
	"github.com/thatsimonsguy/presence-matrix/internal/model"
	"github.com/thatsimonsguy/presence-matrix/internal/network"
	"github.com/thatsimonsguy/presence-matrix/internal/pinning"
)

const DefaultTimeout = 30 * time.Second

var (
	ErrNoLink      = errors.New("no network association")
	ErrConnect     = errors.New("unable to connect")
	ErrFingerprint = errors.New("pinned fingerprint rejected server")
	ErrStatus      = errors.New("unexpected HTTP status")
	ErrParse       = errors.New("JSON parse failed")
	ErrNoPresence  = errors.New("presence field missing")
)

type Metrics interface {
	Incr(name string, tags ...string)
	Gauge(name string, value float64, tags ...string)
	Timing(name string, d time.Duration, tags ...string)
}

type Notifier interface {
	Send(ctx context.Context, title, message string) error
}

type Fetcher struct {
	creds     config.Credentials
	link      network.Link
	timeout   time.Duration
	newClient func(pinning.Fingerprint, time.Duration) (*http.Client, error)
	metrics   Metrics
	notifier  Notifier

	pinAlerted bool
}

type Option func(*Fetcher)

func WithMetrics(m Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(f *Fetcher) { f.notifier = n }
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

func NewFetcher(creds config.Credentials, link network.Link, opts ...Option) *Fetcher {
	f := &Fetcher{
		creds:     creds,
		link:      link,
		timeout:   DefaultTimeout,
		newClient: pinning.NewClient,
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPresence performs one poll. It never returns an error: failures are
// logged and reported as PresenceAway.
func (f *Fetcher) FetchPresence(ctx context.Context) model.Presence {
	start := time.Now()
	presence, err := f.fetch(ctx)
	f.metrics.Timing("fetch.duration", time.Since(start))
	f.metrics.Incr("fetch.count")

	if err != nil {
		reason := Reason(err)
		log.Warn().Err(err).Str("reason", reason).Msg("Presence poll failed, falling back to away")
		f.metrics.Incr("fetch.failure", "reason:"+reason)
		f.trackFingerprint(ctx, err)
		f.metrics.Gauge("presence.active", 0)
		return model.PresenceAway
	}

	f.pinAlerted = false
	if presence.Active() {
		f.metrics.Gauge("presence.active", 1)
	} else {
		f.metrics.Gauge("presence.active", 0)
	}
	return presence
}

func (f *Fetcher) fetch(ctx context.Context) (model.Presence, error) {
	if !f.link.Associated() {
		return model.PresenceAway, ErrNoLink
	}

	client, err := f.newClient(f.creds.Fingerprint, f.timeout)
	if err != nil {
		return model.PresenceAway, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer client.CloseIdleConnections()

	target := fmt.Sprintf(f.creds.Endpoint, url.QueryEscape(f.creds.BotToken), url.QueryEscape(f.creds.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.PresenceAway, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	log.Debug().Str("host", req.URL.Host).Msg("HTTPS begin")
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, pinning.ErrFingerprintMismatch) {
			return model.PresenceAway, fmt.Errorf("%w: %w", ErrFingerprint, err)
		}
		return model.PresenceAway, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer resp.Body.Close()

	log.Info().Int("status", resp.StatusCode).Msg("HTTPS GET")
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMovedPermanently {
		return model.PresenceAway, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := ReadBody(resp.Body)
	if err != nil {
		return model.PresenceAway, fmt.Errorf("%w: %w", ErrParse, err)
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return model.PresenceAway, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if !doc.Ok && doc.Error != "" {
		log.Warn().Str("api_error", doc.Error).Msg("Presence API reported an error")
	}

	log.Info().Str("presence", doc.Presence).Msg("Presence polled")
	if doc.Presence == "" {
		return model.PresenceAway, ErrNoPresence
	}

	return model.FromAPI(doc.Presence), nil
}

// trackFingerprint sends one notification per run of fingerprint failures.
func (f *Fetcher) trackFingerprint(ctx context.Context, err error) {
	if !errors.Is(err, ErrFingerprint) {
		if !errors.Is(err, ErrNoLink) {
			f.pinAlerted = false
		}
		return
	}
	if f.pinAlerted || f.notifier == nil {
		return
	}
	f.pinAlerted = true

	msg := fmt.Sprintf("The presence endpoint presented an unexpected certificate (%v). Rebuild with the new fingerprint.", err)
	if sendErr := f.notifier.Send(ctx, "Certificate fingerprint rotated", msg); sendErr != nil {
		log.Warn().Err(sendErr).Msg("Failed to send fingerprint rotation notification")
	}
}

// Reason names the failure class of a fetch error for logs and metric tags.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoLink):
		return "no_link"
	case errors.Is(err, ErrFingerprint):
		return "fingerprint"
	case errors.Is(err, ErrConnect):
		return "connect"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrNoPresence):
		return "no_presence"
	default:
		return "unknown"
	}
}

type nopMetrics struct{}

func (nopMetrics) Incr(string, ...string)                  {}
func (nopMetrics) Gauge(string, float64, ...string)        {}
func (nopMetrics) Timing(string, time.Duration, ...string) {}

package datadog

import (
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"
)

// Metrics emits DogStatsD metrics. A nil or disabled Metrics drops everything.
type Metrics struct {
	client *statsd.Client
}

// New connects to the agent at addr. An empty addr disables metrics.
func New(addr, namespace string, tags []string) *Metrics {
	if addr == "" {
		log.Info().Msg("Datadog metrics disabled")
		return &Metrics{}
	}

	client, err := statsd.New(addr)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		return &Metrics{}
	}

	client.Namespace = namespace
	client.Tags = tags

	log.Info().
		Str("addr", addr).
		Str("namespace", namespace).
		Strs("tags", tags).
		Msg("Datadog metrics initialized")

	return &Metrics{client: client}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.client != nil
}

func (m *Metrics) Gauge(name string, value float64, tags ...string) {
	if !m.Enabled() {
		return
	}
	if err := m.client.Gauge(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
	}
}

func (m *Metrics) Incr(name string, tags ...string) {
	if !m.Enabled() {
		return
	}
	if err := m.client.Incr(name, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit count metric")
	}
}

func (m *Metrics) Timing(name string, d time.Duration, tags ...string) {
	if !m.Enabled() {
		return
	}
	if err := m.client.Timing(name, d, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit timing metric")
	}
}

func (m *Metrics) Close() error {
	if !m.Enabled() {
		return nil
	}
	return m.client.Close()
}

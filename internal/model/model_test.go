package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAPI(t *testing.T) {
	tests := []struct {
		raw      string
		expected Presence
	}{
		{"active", PresenceActive},
		{"away", PresenceAway},
		{"", PresenceAway},
		{"Active", PresenceAway},
		{"active ", PresenceAway},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromAPI(tt.raw))
		})
	}
}

func TestPresenceActive(t *testing.T) {
	assert.True(t, PresenceActive.Active())
	assert.False(t, PresenceAway.Active())
	assert.False(t, Presence("").Active())
}

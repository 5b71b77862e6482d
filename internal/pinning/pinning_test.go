package pinning

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFingerprint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"colon separated", "C1:0D:53:49:D2:3E:E5:2B:A2:61:D5:9E:6F:99:0D:3D:FD:8B:B2:B3", false},
		{"space separated", "c1 0d 53 49 d2 3e e5 2b a2 61 d5 9e 6f 99 0d 3d fd 8b b2 b3", false},
		{"bare hex", "C10D5349D23EE52BA261D59E6F990D3DFD8BB2B3", false},
		{"too short", "C1:0D:53", true},
		{"too long", "C10D5349D23EE52BA261D59E6F990D3DFD8BB2B3FF", true},
		{"not hex", "ZZ:0D:53:49:D2:3E:E5:2B:A2:61:D5:9E:6F:99:0D:3D:FD:8B:B2:B3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := ParseFingerprint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "C1:0D:53:49:D2:3E:E5:2B:A2:61:D5:9E:6F:99:0D:3D:FD:8B:B2:B3", fp.String())
		})
	}
}

func TestNewClient_PinnedMatch(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	client, err := NewClient(Of(ts.Certificate().Raw), 5*time.Second)
	require.NoError(t, err)
	defer client.CloseIdleConnections()

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewClient_PinnedMismatch(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	var wrong Fingerprint
	client, err := NewClient(wrong, 5*time.Second)
	require.NoError(t, err)
	defer client.CloseIdleConnections()

	_, err = client.Get(ts.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFingerprintMismatch))
}

func TestNewClient_DoesNotFollowRedirects(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer ts.Close()

	client, err := NewClient(Of(ts.Certificate().Raw), 5*time.Second)
	require.NoError(t, err)
	defer client.CloseIdleConnections()

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
}

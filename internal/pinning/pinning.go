// Package pinning authenticates a server by the SHA-1 fingerprint of its leaf
// certificate instead of validating a CA chain.
//
// A pinned fingerprint must be rotated whenever the server rotates its
// certificate. Until it is, every connection fails with ErrFingerprintMismatch.
package pinning

import (
	"bytes"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
)

const FingerprintSize = sha1.Size

var ErrFingerprintMismatch = errors.New("server certificate does not match pinned fingerprint")

type Fingerprint [FingerprintSize]byte

// ParseFingerprint accepts 20 hex bytes, optionally separated by colons or spaces.
func ParseFingerprint(s string) (Fingerprint, error) {
	var fp Fingerprint

	cleaned := strings.NewReplacer(":", "", " ", "").Replace(strings.TrimSpace(s))
	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return fp, fmt.Errorf("invalid fingerprint %q: %w", s, err)
	}
	if len(raw) != FingerprintSize {
		return fp, fmt.Errorf("invalid fingerprint %q: want %d bytes, got %d", s, FingerprintSize, len(raw))
	}

	copy(fp[:], raw)
	return fp, nil
}

// Of returns the fingerprint of a DER encoded certificate.
func Of(der []byte) Fingerprint {
	return sha1.Sum(der)
}

func (fp Fingerprint) String() string {
	parts := make([]string, len(fp))
	for i, b := range fp {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

// TLSConfig returns a client config that accepts exactly one leaf certificate.
// Chain and hostname verification are replaced by the fingerprint check.
func TLSConfig(fp Fingerprint) *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true,
		VerifyConnection: func(cs tls.ConnectionState) error {
			if len(cs.PeerCertificates) == 0 {
				return ErrFingerprintMismatch
			}
			got := Of(cs.PeerCertificates[0].Raw)
			if !bytes.Equal(got[:], fp[:]) {
				return fmt.Errorf("%w: got %s", ErrFingerprintMismatch, got)
			}
			return nil
		},
	}
}

// NewClient builds a single-use HTTPS client pinned to fp. HTTP/2 is offered
// via ALPN with HTTP/1.1 as fallback. Redirects are returned to the caller
// rather than followed. Callers own the transport and should call
// CloseIdleConnections when done.
func NewClient(fp Fingerprint, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		TLSClientConfig:     TLSConfig(fp),
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   true,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("failed to enable HTTP/2: %w", err)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

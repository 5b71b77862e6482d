package presence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

// DocumentCapacity bounds the size of a presence response. Larger payloads
// fail to parse instead of being buffered.
const DocumentCapacity = 1024

var ErrDocumentTooLarge = fmt.Errorf("document exceeds %d bytes", DocumentCapacity)

// Document is the users.getPresence response body. Only the presence string
// matters; ok and error are filled when they decode.
type Document struct {
	slack.SlackResponse
	Presence string
}

// ReadBody reads at most DocumentCapacity bytes from r.
func ReadBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, DocumentCapacity+1))
	if err != nil {
		return nil, err
	}
	if len(body) > DocumentCapacity {
		return nil, ErrDocumentTooLarge
	}
	return body, nil
}

// ParseDocument fails only on an empty, oversized or malformed payload. A
// field of an unexpected type is left at its zero value.
func ParseDocument(payload []byte) (*Document, error) {
	if len(payload) > DocumentCapacity {
		return nil, ErrDocumentTooLarge
	}
	if len(payload) == 0 {
		return nil, errors.New("empty document")
	}
	if !json.Valid(payload) {
		return nil, errors.New("malformed JSON document")
	}

	var doc Document
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		log.Debug().Err(err).Msg("Presence document is not an object")
		return &doc, nil
	}

	decodeField(fields, "presence", &doc.Presence)
	decodeField(fields, "ok", &doc.Ok)
	decodeField(fields, "error", &doc.Error)
	return &doc, nil
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Debug().Err(err).Str("field", name).Msg("Ignoring undecodable document field")
	}
}

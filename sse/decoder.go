// Copyright (c) 2025 BVK Chaitanya

package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

const (
	dataPrefix = "data: "

	// doneSentinel marks a frame without payload. It does not end the stream.
	doneSentinel = "[DONE]"
)

// Decoder splits a text/event-stream body into lines and returns the JSON
// payload of every usable `data: ` line.
//
// Lines without the `data: ` prefix, empty payloads and the [DONE] sentinel
// produce nothing. Payloads that are not valid JSON are dropped without an
// error so that one bad frame cannot end a long lived subscription.
type Decoder struct {
	r *bufio.Reader

	// Endpoint is only used for logging.
	Endpoint string

	dropped int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next blocks until the next JSON payload is available. Returns io.EOF after
// the underlying reader is exhausted, or the reader's error.
func (d *Decoder) Next() (json.RawMessage, error) {
	for {
		line, err := d.r.ReadString('\n')
		if len(line) > 0 {
			if payload, ok := d.parseLine(line); ok {
				return payload, nil
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

// Dropped returns the number of malformed frames skipped so far.
func (d *Decoder) Dropped() int {
	return d.dropped
}

func (d *Decoder) parseLine(line string) (json.RawMessage, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, dataPrefix) {
		return nil, false
	}
	text := strings.TrimSpace(line[len(dataPrefix):])
	if len(text) == 0 || text == doneSentinel {
		return nil, false
	}
	if !json.Valid([]byte(text)) {
		d.dropped++
		slog.Debug("dropped malformed event-stream frame", "endpoint", d.Endpoint, "frame", text)
		return nil, false
	}
	return json.RawMessage(text), true
}

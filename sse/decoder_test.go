// Copyright (c) 2025 BVK Chaitanya

package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecoderSkipsNoise(t *testing.T) {
	body := strings.Join([]string{
		": keep-alive comment",
		"event: balance",
		"data: {\"a\":1}",
		"",
		"data: not json at all",
		"data: [DONE]",
		"data:    ",
		"id: 42",
		"data: {\"a\":2}\r",
		"data:{\"a\":3}",
		"data: {\"a\":4}",
	}, "\n")

	dec := NewDecoder(strings.NewReader(body))
	var got []string
	for {
		v, err := dec.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatal(err)
			}
			break
		}
		got = append(got, string(v))
	}

	want := []string{`{"a":1}`, `{"a":2}`, `{"a":4}`}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: want %s, got %s", i, want[i], got[i])
		}
	}
	if dec.Dropped() != 1 {
		t.Fatalf("want 1 dropped frame, got %d", dec.Dropped())
	}
}

func TestDecoderDoneWithWhitespace(t *testing.T) {
	body := "data:   [DONE]  \t\r\ndata: \t[DONE]\ndata: {\"a\":1}\n"

	dec := NewDecoder(strings.NewReader(body))
	v, err := dec.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != `{"a":1}` {
		t.Fatalf("want first frame {\"a\":1}, got %s", v)
	}
	if _, err := dec.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("want io.EOF, got %v", err)
	}
	if dec.Dropped() != 0 {
		t.Fatalf("done markers must not count as dropped, got %d", dec.Dropped())
	}
}

func TestDecoderLongLine(t *testing.T) {
	long := strings.Repeat("x", 256*1024)
	body := "data: {\"v\":\"" + long + "\"}\n"

	dec := NewDecoder(strings.NewReader(body))
	v, err := dec.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != len(long)+8 {
		t.Fatalf("want payload of %d bytes, got %d", len(long)+8, len(v))
	}
	if _, err := dec.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("want io.EOF, got %v", err)
	}
}

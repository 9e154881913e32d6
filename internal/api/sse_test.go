package api

import (
	"io"
	"strings"
	"testing"
)

func readerFor(s string) *sseReader {
	return newSSEReader(io.NopCloser(strings.NewReader(s)))
}

func TestSSEReaderFrames(t *testing.T) {
	r := readerFor("event: message\ndata: {\"a\":1}\n\nevent: complete\ndata: {}\n\n")

	name, data, err := r.Next()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if name != "message" || string(data) != `{"a":1}` {
		t.Errorf("first frame = %q %q", name, data)
	}

	name, data, err = r.Next()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if name != "complete" || string(data) != "{}" {
		t.Errorf("second frame = %q %q", name, data)
	}

	if _, _, err = r.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestSSEReaderMultilineData(t *testing.T) {
	r := readerFor("data: first\ndata: second\n\n")

	_, data, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if string(data) != "first\nsecond" {
		t.Errorf("data = %q", data)
	}
}

func TestSSEReaderSkipsNoise(t *testing.T) {
	r := readerFor(": keepalive comment\nretry: 3000\n\nevent: message\ndata: x\n\n")

	name, data, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if name != "message" || string(data) != "x" {
		t.Errorf("frame = %q %q", name, data)
	}
}

func TestSSEReaderCRLF(t *testing.T) {
	r := readerFor("event: message\r\ndata: x\r\n\r\n")

	name, data, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if name != "message" || string(data) != "x" {
		t.Errorf("frame = %q %q", name, data)
	}
}

func TestSSEReaderEOFMidFrame(t *testing.T) {
	// A frame terminated by EOF instead of a blank line still delivers.
	r := readerFor("event: message\ndata: x\n")

	name, data, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if name != "message" || string(data) != "x" {
		t.Errorf("frame = %q %q", name, data)
	}
	if _, _, err = r.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

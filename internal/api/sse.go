package api

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// sseReader decodes text/event-stream frames into (event name, data)
// pairs. Comment lines and unknown fields are skipped; multi-line data
// is joined with newlines per the SSE spec.
type sseReader struct {
	reader *bufio.Reader
	body   io.Closer
}

func newSSEReader(body io.ReadCloser) *sseReader {
	return &sseReader{
		reader: bufio.NewReader(body),
		body:   body,
	}
}

// Next blocks until a complete frame arrives, returning its event name
// and data payload. io.EOF signals the end of the stream.
func (s *sseReader) Next() (string, []byte, error) {
	var eventName string
	var data bytes.Buffer

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", nil, err
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if data.Len() > 0 {
				return eventName, data.Bytes(), nil
			}
			if err == io.EOF {
				return "", nil, io.EOF
			}
			continue
		}

		if strings.HasPrefix(line, "event:") {
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		} else if strings.HasPrefix(line, "data:") {
			chunk := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(chunk)
		}

		if err == io.EOF {
			if data.Len() > 0 {
				return eventName, data.Bytes(), nil
			}
			return "", nil, io.EOF
		}
	}
}

func (s *sseReader) Close() error {
	if s.body != nil {
		return s.body.Close()
	}
	return nil
}

// Package transcribe converts submitted audio into plain text. The coordinator
// owns retry policy; providers here never retry on their own.
package transcribe

import (
	"context"
	"errors"
	"strings"
)

// ErrUnsupportedFormat is returned for content types outside the supported set.
var ErrUnsupportedFormat = errors.New("transcribe: unsupported audio format")

var supportedFormats = map[string]struct{}{
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/wave":  {},
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/mp4":   {},
	"audio/m4a":   {},
	"audio/webm":  {},
	"audio/ogg":   {},
	"audio/flac":  {},
}

// IsSupported checks a declared content type against the supported set,
// ignoring parameters like ";codecs=opus".
func IsSupported(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	_, ok := supportedFormats[ct]
	return ok
}

// Transcriber turns an audio payload with a declared content type into text.
// An empty transcript is a valid result, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

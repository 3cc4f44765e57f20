package whisper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"notesync-be/pkg/transcribe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "text", r.FormValue("response_format"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()
		assert.Equal(t, "audio.wav", header.Filename)

		w.Write([]byte("  buy milk tomorrow \n"))
	}))
	defer server.Close()

	provider := NewWhisperProvider("test-key", server.URL, "whisper-1")

	transcript, err := provider.Transcribe(context.Background(), []byte("fake-audio"), "audio/wav")

	require.NoError(t, err)
	assert.Equal(t, "buy milk tomorrow", transcript, "transcript should be trimmed")
}

func TestTranscribeEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   \n"))
	}))
	defer server.Close()

	provider := NewWhisperProvider("test-key", server.URL, "")

	transcript, err := provider.Transcribe(context.Background(), []byte("silence"), "audio/mp3")

	require.NoError(t, err, "an empty transcript is a valid result")
	assert.Equal(t, "", transcript)
}

func TestTranscribeUnsupportedFormat(t *testing.T) {
	provider := NewWhisperProvider("test-key", "http://localhost:1", "")

	_, err := provider.Transcribe(context.Background(), []byte("data"), "video/mp4")

	assert.True(t, errors.Is(err, transcribe.ErrUnsupportedFormat))
}

func TestTranscribeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewWhisperProvider("test-key", server.URL, "")

	_, err := provider.Transcribe(context.Background(), []byte("data"), "audio/wav")

	assert.Error(t, err)
}

package audio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	// Buffers below this cannot contain intelligible speech.
	minAudioBytes = 512
	// Whisper upload limit.
	maxAudioBytes = 25 * 1024 * 1024

	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

var (
	ErrAudioTooShort   = errors.New("audio buffer too short to contain speech")
	ErrAudioTooLarge   = errors.New("audio buffer exceeds upload limit")
	ErrEmptyTranscript = errors.New("transcription provider returned empty text")
	ErrTranscription   = errors.New("failed to transcribe audio")
)

type ITranscriber interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

// transcriptionAPI is the slice of the OpenAI client the service needs.
type transcriptionAPI interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

type TranscriptionService struct {
	client      transcriptionAPI
	log         *logrus.Logger
	maxAttempts int
	retryDelay  time.Duration
}

func NewTranscriptionService(apiKey string, log *logrus.Logger) *TranscriptionService {
	return &TranscriptionService{
		client:      openai.NewClient(apiKey),
		log:         log,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Transcribe converts an audio byte buffer into plain text. The buffer is
// written to a temporary file for the provider call; the file is removed on
// every exit path. Transient connectivity failures are retried up to
// maxAttempts with a fixed delay; a malformed or empty provider response is
// terminal and never retried.
func (t *TranscriptionService) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	if len(audioData) < minAudioBytes {
		return "", ErrAudioTooShort
	}
	if len(audioData) > maxAudioBytes {
		return "", ErrAudioTooLarge
	}

	tmpFile, err := os.CreateTemp("", "utterance-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(audioData); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to flush temp audio file: %w", err)
	}

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: tmpFile.Name(),
	}

	var lastErr error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		resp, err := t.client.CreateTranscription(ctx, req)
		if err == nil {
			text := strings.TrimSpace(resp.Text)
			if text == "" {
				return "", ErrEmptyTranscript
			}
			return text, nil
		}

		if !isTransient(err) {
			return "", fmt.Errorf("%w: %v", ErrTranscription, err)
		}

		lastErr = err
		t.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Transient transcription failure, will retry")

		if attempt == t.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(t.retryDelay):
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrTranscription, t.maxAttempts, lastErr)
}

func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == 429
	}

	return false
}

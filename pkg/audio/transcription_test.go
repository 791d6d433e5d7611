package audio

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

type mockTranscriptionAPI struct {
	responses []transcriptionResult
	calls     int
	seenPaths []string
}

type transcriptionResult struct {
	text string
	err  error
}

func (m *mockTranscriptionAPI) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	m.seenPaths = append(m.seenPaths, req.FilePath)
	idx := m.calls
	m.calls++
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	return openai.AudioResponse{Text: r.text}, r.err
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func newTestService(api transcriptionAPI) *TranscriptionService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &TranscriptionService{
		client:      api,
		log:         log,
		maxAttempts: 3,
		retryDelay:  time.Millisecond,
	}
}

func validAudio() []byte {
	return bytes.Repeat([]byte{0x01}, minAudioBytes)
}

func TestTranscribe_Success(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{text: "  set stevia to half a box  "}}}
	svc := newTestService(mock)

	got, err := svc.Transcribe(context.Background(), validAudio())
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "set stevia to half a box" {
		t.Errorf("Transcribe() = %q, want trimmed transcript", got)
	}
	if mock.calls != 1 {
		t.Errorf("provider called %d times, want 1", mock.calls)
	}
}

func TestTranscribe_TooShortRejectedBeforeProviderCall(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{text: "never"}}}
	svc := newTestService(mock)

	_, err := svc.Transcribe(context.Background(), make([]byte, 100))
	if !errors.Is(err, ErrAudioTooShort) {
		t.Fatalf("error = %v, want ErrAudioTooShort", err)
	}
	if mock.calls != 0 {
		t.Errorf("provider called %d times, want 0", mock.calls)
	}
}

func TestTranscribe_TooLargeRejected(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{text: "never"}}}
	svc := newTestService(mock)

	_, err := svc.Transcribe(context.Background(), make([]byte, maxAudioBytes+1))
	if !errors.Is(err, ErrAudioTooLarge) {
		t.Fatalf("error = %v, want ErrAudioTooLarge", err)
	}
	if mock.calls != 0 {
		t.Errorf("provider called %d times, want 0", mock.calls)
	}
}

func TestTranscribe_RetriesTransientThenSucceeds(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{
		{err: timeoutErr{}},
		{err: timeoutErr{}},
		{text: "ten packs of paper wrap"},
	}}
	svc := newTestService(mock)

	got, err := svc.Transcribe(context.Background(), validAudio())
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "ten packs of paper wrap" {
		t.Errorf("Transcribe() = %q", got)
	}
	if mock.calls != 3 {
		t.Errorf("provider called %d times, want 3", mock.calls)
	}
}

func TestTranscribe_ExhaustedRetries(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{err: timeoutErr{}}}}
	svc := newTestService(mock)

	_, err := svc.Transcribe(context.Background(), validAudio())
	if !errors.Is(err, ErrTranscription) {
		t.Fatalf("error = %v, want ErrTranscription", err)
	}
	if mock.calls != 3 {
		t.Errorf("provider called %d times, want 3", mock.calls)
	}
}

func TestTranscribe_NonTransientNotRetried(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{
		{err: &openai.APIError{HTTPStatusCode: 400, Message: "bad audio"}},
	}}
	svc := newTestService(mock)

	_, err := svc.Transcribe(context.Background(), validAudio())
	if !errors.Is(err, ErrTranscription) {
		t.Fatalf("error = %v, want ErrTranscription", err)
	}
	if mock.calls != 1 {
		t.Errorf("provider called %d times, want 1", mock.calls)
	}
}

func TestTranscribe_EmptyProviderTextNotRetried(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{text: "   "}}}
	svc := newTestService(mock)

	_, err := svc.Transcribe(context.Background(), validAudio())
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("error = %v, want ErrEmptyTranscript", err)
	}
	if mock.calls != 1 {
		t.Errorf("provider called %d times, want 1", mock.calls)
	}
}

func TestTranscribe_CancelledDuringBackoff(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{err: timeoutErr{}}}}
	svc := newTestService(mock)
	svc.retryDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Transcribe(ctx, validAudio())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestTranscribe_TempFileCleanedUp(t *testing.T) {
	mock := &mockTranscriptionAPI{responses: []transcriptionResult{{text: "ok"}}}
	svc := newTestService(mock)

	if _, err := svc.Transcribe(context.Background(), validAudio()); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if len(mock.seenPaths) == 0 {
		t.Fatal("provider never saw a file path")
	}
	if _, err := os.Stat(mock.seenPaths[0]); err == nil {
		t.Errorf("temp file %s still exists after Transcribe returned", mock.seenPaths[0])
	}
}

package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateAudioFile(file *multipart.FileHeader) error
}

type utils struct {
	maxAudioSize   int64
	allowedFormats []string
}

func New() IUtils {
	return &utils{
		maxAudioSize:   25 * 1024 * 1024,
		allowedFormats: []string{".wav", ".mp3", ".m4a", ".webm", ".ogg"},
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxAudioSize {
		return errors.New("audio file size exceeds limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range u.allowedFormats {
		if ext == allowed {
			return nil
		}
	}

	return errors.New("unsupported audio format")
}

package command

import "CafeInventory/pkg/response"

var (
	ErrUnclearCommand       = response.NewError(400, "command could not be understood")
	ErrTranscriptionFailed  = response.NewError(500, "audio transcription failed")
	ErrInterpretationFailed = response.NewError(500, "command interpretation failed")
	ErrAudioFileRequired    = response.NewError(400, "audio file is required")
	ErrAudioTooShort        = response.NewError(400, "audio too short to contain speech")
	ErrAudioTooLarge        = response.NewError(413, "audio file exceeds the upload limit")
	ErrCommandLogNotFound   = response.NewError(404, "command log not found")
	ErrRateLimitExceeded    = response.NewError(429, "too many commands, slow down")
)

package command

import (
	"time"

	"CafeInventory/internal/entity"
)

type ProcessTextCommandRequest struct {
	Text   string `json:"text" validate:"required,min=1,max=2000"`
	UserID string `json:"-"`
}

type ProcessCommandResponse struct {
	Transcription string                      `json:"transcription,omitempty"`
	Commands      []entity.InterpretedCommand `json:"commands"`
	Outcomes      []entity.ExecutionOutcome   `json:"outcomes"`
	Messages      []UserMessage               `json:"messages"`
}

// UserMessage is one line of feedback shown to the person who issued the
// command, in the same order as the candidates they spoke.
type UserMessage struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

type CommandLogResponse struct {
	ID            string    `json:"id"`
	RawText       string    `json:"raw_text"`
	Transcript    string    `json:"transcript,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	Action        string    `json:"action,omitempty"`
	ItemName      string    `json:"item_name,omitempty"`
	Quantity      float64   `json:"quantity,omitempty"`
	UnitName      string    `json:"unit_name,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	ResultMessage string    `json:"result_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Logs  []CommandLogResponse `json:"logs"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int                  `json:"total"`
}

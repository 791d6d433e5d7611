package commandService

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"CafeInventory/internal/api/command"
	"CafeInventory/internal/entity"
	"CafeInventory/pkg/audio"
	contextPkg "CafeInventory/pkg/context"
	"CafeInventory/pkg/nlp"

	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	// Anything shorter cannot name an item, let alone an action.
	minUtteranceLength = 2
)

func (s *commandService) ProcessTextCommand(ctx context.Context, req command.ProcessTextCommandRequest) (*command.ProcessCommandResponse, error) {
	return s.processUtterance(ctx, req.UserID, req.Text, "", "")
}

func (s *commandService) ProcessVoiceCommand(ctx context.Context, userID string, audioData []byte, fileName string) (*command.ProcessCommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	transcript, err := s.transcriber.Transcribe(ctx, audioData)
	if err != nil {
		return nil, mapTranscriptionError(err)
	}

	audioURL := s.archiveAudio(ctx, fileName, audioData)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"transcript": transcript,
	}).Debug("Audio transcribed, handing off to interpretation")

	resp, err := s.processUtterance(ctx, userID, transcript, transcript, audioURL)
	if err != nil {
		return nil, err
	}

	resp.Transcription = transcript
	return resp, nil
}

func (s *commandService) Transcribe(ctx context.Context, audioData []byte) (*command.TranscribeResponse, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audioData)
	if err != nil {
		return nil, mapTranscriptionError(err)
	}

	return &command.TranscribeResponse{Transcription: transcript}, nil
}

// processUtterance runs the full pipeline for one utterance: preprocess,
// snapshot, interpret, validate, execute, format. Every candidate's
// disposition is returned; partial success is a normal outcome.
func (s *commandService) processUtterance(ctx context.Context, userID, text, transcript, audioURL string) (*command.ProcessCommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	normalized := nlp.Preprocess(text)
	if utf8.RuneCountInString(normalized) < minUtteranceLength {
		return nil, command.ErrUnclearCommand
	}

	snapshot, err := s.takeSnapshot(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to take inventory snapshot")
		return nil, err
	}

	candidates, err := s.interpret(ctx, normalized, snapshot)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"text":       normalized,
		}).Info("Interpretation produced no candidates")
		return nil, command.ErrUnclearCommand
	}

	validated := validate(candidates, snapshot)
	outcomes := s.execute(ctx, userID, validated)

	s.persistLogs(ctx, userID, normalized, transcript, audioURL, outcomes)

	return &command.ProcessCommandResponse{
		Commands: validated,
		Outcomes: outcomes,
		Messages: formatOutcomes(outcomes),
	}, nil
}

func (s *commandService) takeSnapshot(ctx context.Context) (entity.InventorySnapshot, error) {
	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		return entity.InventorySnapshot{}, err
	}

	items, err := repo.Items.GetAllItems(ctx)
	if err != nil {
		return entity.InventorySnapshot{}, err
	}

	uoms, err := repo.UnitsOfMeasure.GetAllUnitsOfMeasure(ctx)
	if err != nil {
		return entity.InventorySnapshot{}, err
	}

	uomNames := make(map[string]string, len(uoms))
	for _, u := range uoms {
		uomNames[u.ID] = u.Name
	}

	entries := make([]entity.SnapshotEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, entity.SnapshotEntry{
			ItemID:            item.ID,
			ItemName:          item.Name,
			UnitOfMeasureID:   item.UnitOfMeasureID,
			UnitOfMeasureName: uomNames[item.UnitOfMeasureID],
		})
	}

	return entity.InventorySnapshot{
		Entries: entries,
		TakenAt: time.Now(),
	}, nil
}

// persistLogs writes one audit row per candidate. Logging is best effort: a
// storage failure here must not fail a request whose commands already ran.
func (s *commandService) persistLogs(ctx context.Context, userID, rawText, transcript, audioURL string, outcomes []entity.ExecutionOutcome) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client for command logging")
		return
	}

	for _, o := range outcomes {
		logID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to generate command log ID")
			continue
		}

		entry := entity.CommandLog{
			ID:            logID,
			UserID:        userID,
			RawText:       rawText,
			Transcript:    transcript,
			AudioURL:      audioURL,
			Action:        string(o.Command.Action),
			ItemName:      o.Command.ItemName,
			Quantity:      o.Command.Quantity,
			UnitName:      o.Command.UnitOfMeasureName,
			Status:        string(o.Command.Status),
			Error:         o.Command.Error,
			ResultMessage: o.Message,
			CreatedAt:     time.Now(),
		}
		if o.Failed() {
			entry.ResultMessage = o.ErrorMessage
		}

		if err := repo.CommandLogs.CreateCommandLog(ctx, entry); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to persist command log")
		}
	}
}

// archiveAudio keeps the original recording for audit. Best effort: an upload
// failure only costs the archive link.
func (s *commandService) archiveAudio(ctx context.Context, fileName string, audioData []byte) string {
	requestID := contextPkg.GetRequestID(ctx)

	if s.s3 == nil || len(audioData) == 0 {
		return ""
	}

	key := fmt.Sprintf("commands/audio/%d-%s", time.Now().UnixNano(), fileName)
	url, err := s.s3.UploadBytes(key, audioData)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to archive command audio")
		return ""
	}

	return url
}

func (s *commandService) GetHistory(ctx context.Context, userID string, page, limit int) (*command.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client for command history")
		return nil, err
	}

	logs, err := repo.CommandLogs.GetCommandLogsByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := repo.CommandLogs.CountCommandLogsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]command.CommandLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, command.CommandLogResponse{
			ID:            l.ID,
			RawText:       l.RawText,
			Transcript:    l.Transcript,
			AudioURL:      s.presignAudioURL(ctx, l.AudioURL),
			Action:        l.Action,
			ItemName:      l.ItemName,
			Quantity:      l.Quantity,
			UnitName:      l.UnitName,
			Status:        l.Status,
			Error:         l.Error,
			ResultMessage: l.ResultMessage,
			CreatedAt:     l.CreatedAt,
		})
	}

	return &command.HistoryResponse{
		Logs:  responses,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// presignAudioURL swaps a stored archive location for a short-lived playback
// URL. Best effort: if presigning fails the stored URL is returned as-is.
func (s *commandService) presignAudioURL(ctx context.Context, audioURL string) string {
	if s.s3 == nil || audioURL == "" {
		return audioURL
	}

	presigned, err := s.s3.PresignUrl(audioURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to presign command audio URL")
		return audioURL
	}

	return presigned
}

func mapTranscriptionError(err error) error {
	switch {
	case errors.Is(err, audio.ErrAudioTooShort):
		return command.ErrAudioTooShort
	case errors.Is(err, audio.ErrAudioTooLarge):
		return command.ErrAudioTooLarge
	default:
		return command.ErrTranscriptionFailed
	}
}

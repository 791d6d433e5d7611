package commandService

import (
	"context"
	"errors"
	"testing"

	"CafeInventory/internal/api/command"
	"CafeInventory/internal/entity"
	"CafeInventory/pkg/audio"
)

func newPipelineFixture(completer Completer, transcriber *fakeTranscriber, items ...entity.Item) (*commandService, *fakeItemStore, *fakeCommandLogStore) {
	store := newFakeItemStore(items...)
	uoms := &fakeUOMStore{uoms: []entity.UnitOfMeasure{
		{ID: "uom-box", Name: "box"},
		{ID: "uom-pack", Name: "pack"},
	}}
	invRepo := &fakeInventoryRepo{items: store, uoms: uoms, counts: &fakeCountStore{}}
	logs := &fakeCommandLogStore{}
	svc := newTestService(invRepo, &fakeCommandRepo{logs: logs}, completer, transcriber)
	return svc, store, logs
}

func TestProcessTextCommandFullPipeline(t *testing.T) {
	completer := &fakeCompleter{response: candidateJSON(
		entity.InterpretedCommand{Action: entity.ActionSet, ItemID: "item-stevia", ItemName: "stevia", Quantity: 0.5, UnitOfMeasureID: "uom-box", UnitOfMeasureName: "box", Status: entity.CommandStatusValid},
		entity.InterpretedCommand{Action: entity.ActionAdd, ItemID: "item-paper-wrap", ItemName: "paper wrap", Quantity: 10, UnitOfMeasureID: "uom-pack", UnitOfMeasureName: "pack", Status: entity.CommandStatusValid},
	)}
	svc, store, logs := newPipelineFixture(completer, nil, steviaItem(1), paperWrapItem(3))

	resp, err := svc.ProcessTextCommand(context.Background(), command.ProcessTextCommandRequest{
		Text:   "Set stevia to half a box, add 10 packs of paper wrap!",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("ProcessTextCommand() error = %v", err)
	}

	if len(resp.Commands) != 2 || len(resp.Outcomes) != 2 || len(resp.Messages) != 2 {
		t.Fatalf("got %d commands, %d outcomes, %d messages; want 2 of each",
			len(resp.Commands), len(resp.Outcomes), len(resp.Messages))
	}
	for i, m := range resp.Messages {
		if m.IsError {
			t.Errorf("message %d is an error: %s", i, m.Text)
		}
	}
	if got := store.quantity("item-stevia"); got != 0.5 {
		t.Errorf("stevia = %v, want 0.5", got)
	}
	if got := store.quantity("item-paper-wrap"); got != 13 {
		t.Errorf("paper wrap = %v, want 13", got)
	}
	if len(logs.logs) != 2 {
		t.Errorf("persisted %d command logs, want 2", len(logs.logs))
	}
}

func TestProcessTextCommandInvalidItemReported(t *testing.T) {
	completer := &fakeCompleter{response: candidateJSON(
		entity.InterpretedCommand{Action: entity.ActionSet, ItemName: "unicorn dust", Quantity: 5, Status: entity.CommandStatusValid},
	)}
	svc, _, _ := newPipelineFixture(completer, nil, steviaItem(1))

	resp, err := svc.ProcessTextCommand(context.Background(), command.ProcessTextCommandRequest{
		Text:   "set unicorn dust to 5",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("ProcessTextCommand() error = %v", err)
	}

	if len(resp.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(resp.Commands))
	}
	if resp.Commands[0].Status != entity.CommandStatusInvalid {
		t.Errorf("status = %q, want invalid", resp.Commands[0].Status)
	}
	if !resp.Messages[0].IsError {
		t.Error("expected an error message for the invalid candidate")
	}
}

func TestProcessTextCommandTooShort(t *testing.T) {
	completer := &fakeCompleter{}
	svc, _, _ := newPipelineFixture(completer, nil)

	// "é" is one rune across two bytes; the minimum counts runes.
	tests := []string{"", "x", "?!...", "   ", "é"}
	for _, text := range tests {
		_, err := svc.ProcessTextCommand(context.Background(), command.ProcessTextCommandRequest{
			Text:   text,
			UserID: "user-1",
		})
		if !errors.Is(err, command.ErrUnclearCommand) {
			t.Errorf("ProcessTextCommand(%q) error = %v, want ErrUnclearCommand", text, err)
		}
	}

	if len(completer.messages) != 0 {
		t.Errorf("interpreter invoked %d times for unclear input", len(completer.messages))
	}
}

func TestProcessTextCommandEmptyInterpretation(t *testing.T) {
	completer := &fakeCompleter{response: "[]"}
	svc, _, logs := newPipelineFixture(completer, nil, steviaItem(1))

	_, err := svc.ProcessTextCommand(context.Background(), command.ProcessTextCommandRequest{
		Text:   "hello there, how are you today",
		UserID: "user-1",
	})
	if !errors.Is(err, command.ErrUnclearCommand) {
		t.Fatalf("error = %v, want ErrUnclearCommand", err)
	}
	if len(completer.messages) != 1 {
		t.Errorf("interpreter invoked %d times, want 1", len(completer.messages))
	}
	if len(logs.logs) != 0 {
		t.Errorf("persisted %d command logs for an empty interpretation", len(logs.logs))
	}
}

func TestProcessTextCommandPartialSuccess(t *testing.T) {
	completer := &fakeCompleter{response: candidateJSON(
		entity.InterpretedCommand{Action: entity.ActionSet, ItemID: "item-stevia", ItemName: "stevia", Quantity: 2, Status: entity.CommandStatusValid},
		entity.InterpretedCommand{Action: entity.ActionSet, ItemName: "unicorn dust", Quantity: 5, Status: entity.CommandStatusValid},
	)}
	svc, store, _ := newPipelineFixture(completer, nil, steviaItem(1))

	resp, err := svc.ProcessTextCommand(context.Background(), command.ProcessTextCommandRequest{
		Text:   "set stevia to 2 and set unicorn dust to 5",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("ProcessTextCommand() error = %v", err)
	}

	if resp.Messages[0].IsError {
		t.Errorf("first command failed: %s", resp.Messages[0].Text)
	}
	if !resp.Messages[1].IsError {
		t.Error("second command should be reported as an error")
	}
	if got := store.quantity("item-stevia"); got != 2 {
		t.Errorf("stevia = %v, want 2 despite sibling failure", got)
	}
}

func TestProcessVoiceCommandTranscribesThenInterprets(t *testing.T) {
	completer := &fakeCompleter{response: candidateJSON(
		entity.InterpretedCommand{Action: entity.ActionSet, ItemID: "item-stevia", ItemName: "stevia", Quantity: 2, Status: entity.CommandStatusValid},
	)}
	transcriber := &fakeTranscriber{transcript: "Set stevia to 2 boxes."}
	svc, store, logs := newPipelineFixture(completer, transcriber, steviaItem(1))
	svc.s3 = &fakeS3{}

	resp, err := svc.ProcessVoiceCommand(context.Background(), "user-1", []byte("fake audio"), "note.wav")
	if err != nil {
		t.Fatalf("ProcessVoiceCommand() error = %v", err)
	}

	if transcriber.calls != 1 {
		t.Errorf("transcriber called %d times, want 1", transcriber.calls)
	}
	if resp.Transcription != "Set stevia to 2 boxes." {
		t.Errorf("transcription = %q", resp.Transcription)
	}
	if got := store.quantity("item-stevia"); got != 2 {
		t.Errorf("stevia = %v, want 2", got)
	}
	if len(logs.logs) != 1 || logs.logs[0].Transcript == "" {
		t.Errorf("command log missing transcript: %+v", logs.logs)
	}
	if len(logs.logs) == 1 && logs.logs[0].AudioURL == "" {
		t.Error("command log missing archived audio URL")
	}
}

func TestProcessVoiceCommandTranscriptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"too short", audio.ErrAudioTooShort, command.ErrAudioTooShort},
		{"too large", audio.ErrAudioTooLarge, command.ErrAudioTooLarge},
		{"provider failure", audio.ErrTranscription, command.ErrTranscriptionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber := &fakeTranscriber{err: tt.err}
			completer := &fakeCompleter{}
			svc, _, _ := newPipelineFixture(completer, transcriber)

			_, err := svc.ProcessVoiceCommand(context.Background(), "user-1", []byte("fake audio"), "note.wav")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(completer.messages) != 0 {
				t.Error("interpreter invoked after transcription failure")
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "three boxes of stevia"}
	svc, _, _ := newPipelineFixture(&fakeCompleter{}, transcriber)

	resp, err := svc.Transcribe(context.Background(), []byte("fake audio"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if resp.Transcription != "three boxes of stevia" {
		t.Errorf("transcription = %q", resp.Transcription)
	}
}

func TestGetHistoryPagination(t *testing.T) {
	logs := &fakeCommandLogStore{}
	for i := 0; i < 25; i++ {
		logs.logs = append(logs.logs, entity.CommandLog{ID: string(rune('a' + i)), UserID: "user-1"})
	}
	logs.logs = append(logs.logs, entity.CommandLog{ID: "other", UserID: "user-2"})

	invRepo := &fakeInventoryRepo{items: newFakeItemStore(), uoms: &fakeUOMStore{}, counts: &fakeCountStore{}}
	svc := newTestService(invRepo, &fakeCommandRepo{logs: logs}, &fakeCompleter{}, nil)

	resp, err := svc.GetHistory(context.Background(), "user-1", 2, 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if resp.Total != 25 {
		t.Errorf("total = %d, want 25", resp.Total)
	}
	if len(resp.Logs) != 10 {
		t.Errorf("page size = %d, want 10", len(resp.Logs))
	}
	if resp.Page != 2 || resp.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want 2/10", resp.Page, resp.Limit)
	}
}

func TestGetHistoryPresignsAudioURL(t *testing.T) {
	logs := &fakeCommandLogStore{logs: []entity.CommandLog{
		{ID: "log-1", UserID: "user-1", AudioURL: "https://bucket.s3.amazonaws.com/commands/audio/1-note.wav"},
		{ID: "log-2", UserID: "user-1"},
	}}

	invRepo := &fakeInventoryRepo{items: newFakeItemStore(), uoms: &fakeUOMStore{}, counts: &fakeCountStore{}}
	svc := newTestService(invRepo, &fakeCommandRepo{logs: logs}, &fakeCompleter{}, nil)
	svc.s3 = &fakeS3{}

	resp, err := svc.GetHistory(context.Background(), "user-1", 1, 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}

	want := "https://bucket.s3.amazonaws.com/commands/audio/1-note.wav?signature=test"
	if resp.Logs[0].AudioURL != want {
		t.Errorf("audio URL = %q, want %q", resp.Logs[0].AudioURL, want)
	}
	if resp.Logs[1].AudioURL != "" {
		t.Errorf("text-only log got audio URL %q", resp.Logs[1].AudioURL)
	}
}

func TestGetHistoryPresignFailureKeepsStoredURL(t *testing.T) {
	stored := "https://bucket.s3.amazonaws.com/commands/audio/1-note.wav"
	logs := &fakeCommandLogStore{logs: []entity.CommandLog{
		{ID: "log-1", UserID: "user-1", AudioURL: stored},
	}}

	invRepo := &fakeInventoryRepo{items: newFakeItemStore(), uoms: &fakeUOMStore{}, counts: &fakeCountStore{}}
	svc := newTestService(invRepo, &fakeCommandRepo{logs: logs}, &fakeCompleter{}, nil)
	svc.s3 = &fakeS3{presignErr: errors.New("object gone")}

	resp, err := svc.GetHistory(context.Background(), "user-1", 1, 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if resp.Logs[0].AudioURL != stored {
		t.Errorf("audio URL = %q, want stored %q", resp.Logs[0].AudioURL, stored)
	}
}

func TestGetHistoryClampsLimit(t *testing.T) {
	invRepo := &fakeInventoryRepo{items: newFakeItemStore(), uoms: &fakeUOMStore{}, counts: &fakeCountStore{}}
	svc := newTestService(invRepo, &fakeCommandRepo{logs: &fakeCommandLogStore{}}, &fakeCompleter{}, nil)

	resp, err := svc.GetHistory(context.Background(), "user-1", 0, 10000)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if resp.Page != 1 {
		t.Errorf("page = %d, want 1", resp.Page)
	}
	if resp.Limit != maxHistoryLimit {
		t.Errorf("limit = %d, want %d", resp.Limit, maxHistoryLimit)
	}
}

func TestFormatOutcomes(t *testing.T) {
	outcomes := []entity.ExecutionOutcome{
		{Command: entity.InterpretedCommand{ItemName: "stevia"}, ResultingQuantity: 0.5, Message: "Set stevia to 0.5 box"},
		{Command: entity.InterpretedCommand{ItemName: "unicorn dust"}, ErrorMessage: `could not update unicorn dust: item not found`},
	}

	messages := formatOutcomes(outcomes)

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].IsError || messages[0].Text != "Set stevia to 0.5 box" {
		t.Errorf("first message = %+v", messages[0])
	}
	if !messages[1].IsError {
		t.Error("second message should be flagged as error")
	}
}

package commandService

import (
	"context"
	"errors"
	"strings"
	"testing"

	"CafeInventory/internal/api/command"
	"CafeInventory/internal/entity"
)

func TestInterpretParsesCandidates(t *testing.T) {
	completer := &fakeCompleter{response: `[
		{"action":"set","item_id":"item-stevia","item_name":"stevia","quantity":0.5,"unit_of_measure_id":"uom-box","unit_of_measure_name":"box","status":"valid"},
		{"action":"add","item_id":"item-paper-wrap","item_name":"paper wrap","quantity":10,"unit_of_measure_id":"uom-pack","unit_of_measure_name":"pack","status":"valid"}
	]`}
	svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

	got, err := svc.interpret(context.Background(), "set stevia to half a box and add 10 packs of paper wrap", testSnapshot())
	if err != nil {
		t.Fatalf("interpret() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Action != entity.ActionSet || got[0].Quantity != 0.5 {
		t.Errorf("first candidate = %+v, want set 0.5", got[0])
	}
	if got[1].Action != entity.ActionAdd || got[1].Quantity != 10 {
		t.Errorf("second candidate = %+v, want add 10", got[1])
	}
}

func TestInterpretTolerantOfMarkdownFences(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n[{\"action\":\"set\",\"item_id\":\"item-stevia\",\"item_name\":\"stevia\",\"quantity\":2,\"status\":\"valid\"}]\n```"}
	svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

	got, err := svc.interpret(context.Background(), "set stevia to 2", testSnapshot())
	if err != nil {
		t.Fatalf("interpret() error = %v", err)
	}
	if len(got) != 1 || got[0].Action != entity.ActionSet {
		t.Fatalf("got %+v, want one set candidate", got)
	}
}

func TestInterpretNormalizesActionSynonyms(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		wantAction entity.CommandAction
		wantStatus entity.CommandStatus
	}{
		{"update becomes set", "update", entity.ActionSet, entity.CommandStatusValid},
		{"remove becomes subtract", "remove", entity.ActionSubtract, entity.CommandStatusValid},
		{"uppercase folded", "SET", entity.ActionSet, entity.CommandStatusValid},
		{"check rejected", "check", "check", entity.CommandStatusInvalid},
		{"inventory rejected", "inventory", "inventory", entity.CommandStatusInvalid},
		{"unknown verb rejected", "launch", "launch", entity.CommandStatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: `[{"action":"` + tt.action + `","item_id":"item-stevia","item_name":"stevia","quantity":1,"status":"valid"}]`}
			svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

			got, err := svc.interpret(context.Background(), "some utterance", testSnapshot())
			if err != nil {
				t.Fatalf("interpret() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d candidates, want 1", len(got))
			}
			if tt.wantStatus == entity.CommandStatusValid && got[0].Action != tt.wantAction {
				t.Errorf("action = %q, want %q", got[0].Action, tt.wantAction)
			}
			if got[0].Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got[0].Status, tt.wantStatus)
			}
			if tt.wantStatus == entity.CommandStatusInvalid && got[0].Error == "" {
				t.Error("invalid candidate has empty error")
			}
		})
	}
}

func TestInterpretBackfillsRawCommand(t *testing.T) {
	completer := &fakeCompleter{response: `[{"action":"set","item_id":"item-stevia","item_name":"stevia","quantity":1,"status":"valid"}]`}
	svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

	got, err := svc.interpret(context.Background(), "set stevia to 1", testSnapshot())
	if err != nil {
		t.Fatalf("interpret() error = %v", err)
	}
	if got[0].RawCommand != "set stevia to 1" {
		t.Errorf("rawCommand = %q, want source utterance", got[0].RawCommand)
	}
}

func TestInterpretRejectsNonArrayResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "I could not understand that."},
		{"object", `{"action":"set"}`},
		{"truncated array", `[{"action":"set"`},
		{"empty response", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: tt.response}
			svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

			_, err := svc.interpret(context.Background(), "set stevia to 1", testSnapshot())
			if !errors.Is(err, command.ErrInterpretationFailed) {
				t.Fatalf("interpret() error = %v, want ErrInterpretationFailed", err)
			}
			if len(completer.messages) != 1 {
				t.Errorf("completer called %d times, want 1 (no retry)", len(completer.messages))
			}
		})
	}
}

func TestInterpretCompleterFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream unavailable")}
	svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

	_, err := svc.interpret(context.Background(), "set stevia to 1", testSnapshot())
	if !errors.Is(err, command.ErrInterpretationFailed) {
		t.Fatalf("interpret() error = %v, want ErrInterpretationFailed", err)
	}
}

func TestInterpreterMessageCarriesSnapshot(t *testing.T) {
	completer := &fakeCompleter{response: "[]"}
	svc := newTestService(&fakeInventoryRepo{}, nil, completer, nil)

	if _, err := svc.interpret(context.Background(), "anything at all", testSnapshot()); err != nil {
		t.Fatalf("interpret() error = %v", err)
	}

	msg := completer.messages[0]
	for _, want := range []string{"item-stevia", "stevia", "box", "item-paper-wrap", "paper wrap", "pack", "anything at all"} {
		if !strings.Contains(msg, want) {
			t.Errorf("interpreter message missing %q", want)
		}
	}
}

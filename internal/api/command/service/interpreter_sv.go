package commandService

import (
	"context"
	"fmt"
	"strings"

	"CafeInventory/internal/api/command"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const interpreterSystemPrompt = `You are an inventory command interpreter for a cafe.
Given a user utterance, produce a JSON array of command objects. Each object has:
  "action": one of "set", "add", "subtract"
  "item_id": the id of the referenced item from the inventory list
  "item_name": the name of the referenced item
  "quantity": a non-negative number
  "unit_of_measure_id": the id of the referenced unit from the unit list
  "unit_of_measure_name": the name of the referenced unit
  "status": "valid" if you are confident, "invalid" otherwise
  "error": a short reason, only when status is "invalid"

Rules:
- "set" assigns an absolute quantity, "add" increments, "subtract" decrements.
- Map "update" to "set". Map "remove" to "subtract"; "remove" with no stated
  quantity means quantity 0.
- An utterance may contain several commands; emit one object per command.
- If the utterance asks a question or requests a stock check rather than a
  mutation, emit one object with status "invalid" and an explanatory error.
- If an item or unit is not in the provided lists, still fill in the name the
  user said, leave the id empty, and mark the object "invalid".
- Respond with ONLY the JSON array, no prose.`

func (s *commandService) interpret(ctx context.Context, text string, snapshot entity.InventorySnapshot) ([]entity.InterpretedCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := s.completer.Complete(ctx, interpreterSystemPrompt, buildInterpreterMessage(text, snapshot))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Language model call failed")
		return nil, command.ErrInterpretationFailed
	}

	candidates, err := parseCandidates(raw)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"response":   raw,
		}).Error("Language model response violated the JSON array contract")
		return nil, command.ErrInterpretationFailed
	}

	for i := range candidates {
		normalizeCandidate(&candidates[i], text)
	}

	return candidates, nil
}

func buildInterpreterMessage(text string, snapshot entity.InventorySnapshot) string {
	var b strings.Builder

	b.WriteString("Inventory items (id: name, unit):\n")
	for _, e := range snapshot.Entries {
		fmt.Fprintf(&b, "- %s: %s, %s (%s)\n", e.ItemID, e.ItemName, e.UnitOfMeasureName, e.UnitOfMeasureID)
	}

	b.WriteString("\nUtterance:\n")
	b.WriteString(text)

	return b.String()
}

// parseCandidates decodes the model response as a JSON array of candidates.
// Markdown code fences around the array are tolerated; anything else that is
// not an array is a contract violation.
func parseCandidates(raw string) ([]entity.InterpretedCommand, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "[") {
		return nil, fmt.Errorf("response is not a JSON array")
	}

	var candidates []entity.InterpretedCommand
	if err := json.UnmarshalFromString(cleaned, &candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

// normalizeCandidate folds legacy action synonyms into the canonical three and
// backfills fields the model tends to omit. Verbs outside the known vocabulary
// are rejected here rather than guessed at.
func normalizeCandidate(c *entity.InterpretedCommand, utterance string) {
	switch entity.CommandAction(strings.ToLower(string(c.Action))) {
	case entity.ActionSet, "update":
		c.Action = entity.ActionSet
	case entity.ActionAdd:
		c.Action = entity.ActionAdd
	case entity.ActionSubtract, "remove":
		c.Action = entity.ActionSubtract
	case "check", "inventory":
		c.Status = entity.CommandStatusInvalid
		if c.Error == "" {
			c.Error = "stock checks are not inventory mutations"
		}
	default:
		c.Status = entity.CommandStatusInvalid
		if c.Error == "" {
			c.Error = fmt.Sprintf("Invalid action: %s", c.Action)
		}
	}

	if c.RawCommand == "" {
		c.RawCommand = utterance
	}

	if c.Status == "" {
		c.Status = entity.CommandStatusValid
	}
}

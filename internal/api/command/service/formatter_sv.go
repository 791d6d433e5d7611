package commandService

import (
	"CafeInventory/internal/api/command"
	"CafeInventory/internal/entity"
)

// formatOutcomes maps executor outcomes to the message list shown to the
// user, one line per candidate in utterance order.
func formatOutcomes(outcomes []entity.ExecutionOutcome) []command.UserMessage {
	messages := make([]command.UserMessage, 0, len(outcomes))

	for _, o := range outcomes {
		if o.Failed() {
			messages = append(messages, command.UserMessage{
				Text:    o.ErrorMessage,
				IsError: true,
			})
			continue
		}

		messages = append(messages, command.UserMessage{
			Text: o.Message,
		})
	}

	return messages
}

package entity

import "time"

type CommandAction string

const (
	ActionSet      CommandAction = "set"
	ActionAdd      CommandAction = "add"
	ActionSubtract CommandAction = "subtract"
)

type CommandStatus string

const (
	CommandStatusValid   CommandStatus = "valid"
	CommandStatusInvalid CommandStatus = "invalid"
)

// InterpretedCommand is one structured candidate produced from a single
// utterance. An utterance may yield several of these; each one is validated
// and executed independently.
type InterpretedCommand struct {
	Action            CommandAction `json:"action"`
	ItemID            string        `json:"item_id"`
	ItemName          string        `json:"item_name"`
	Quantity          float64       `json:"quantity"`
	UnitOfMeasureID   string        `json:"unit_of_measure_id"`
	UnitOfMeasureName string        `json:"unit_of_measure_name"`
	Status            CommandStatus `json:"status"`
	Error             string        `json:"error,omitempty"`
	RawCommand        string        `json:"raw_command"`
}

// ExecutionOutcome is the per-command execution result. Either Message or
// ErrorMessage is set, never both.
type ExecutionOutcome struct {
	Command           InterpretedCommand `json:"command"`
	ResultingQuantity float64            `json:"resulting_quantity,omitempty"`
	Message           string             `json:"message,omitempty"`
	ErrorMessage      string             `json:"error_message,omitempty"`
}

func (o ExecutionOutcome) Failed() bool {
	return o.ErrorMessage != ""
}

// SnapshotEntry pairs an item with its unit of measure as both existed when
// the snapshot was taken.
type SnapshotEntry struct {
	ItemID            string
	ItemName          string
	UnitOfMeasureID   string
	UnitOfMeasureName string
}

// InventorySnapshot is the read-only inventory view captured at the start of
// processing one utterance. It is used for identity checks only; quantities
// are re-fetched at execution time.
type InventorySnapshot struct {
	Entries []SnapshotEntry
	TakenAt time.Time
}

func (s InventorySnapshot) FindItem(itemID, itemName string) (SnapshotEntry, bool) {
	for _, e := range s.Entries {
		if e.ItemID == itemID && e.ItemName == itemName {
			return e, true
		}
	}
	return SnapshotEntry{}, false
}

func (s InventorySnapshot) FindUnit(unitID, unitName string) bool {
	for _, e := range s.Entries {
		if e.UnitOfMeasureID == unitID && e.UnitOfMeasureName == unitName {
			return true
		}
	}
	return false
}

// CommandLog is the persisted audit record of one processed candidate.
type CommandLog struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	RawText       string    `db:"raw_text"`
	Transcript    string    `db:"transcript"`
	AudioURL      string    `db:"audio_url"`
	Action        string    `db:"action"`
	ItemName      string    `db:"item_name"`
	Quantity      float64   `db:"quantity"`
	UnitName      string    `db:"unit_name"`
	Status        string    `db:"status"`
	Error         string    `db:"error"`
	ResultMessage string    `db:"result_message"`
	CreatedAt     time.Time `db:"created_at"`
}

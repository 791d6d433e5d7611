package commandService

import (
	"fmt"

	"CafeInventory/internal/entity"
)

// validate re-checks every candidate against the same snapshot the
// interpreter saw. It is pure and total: the returned slice has the same
// length and order as the input, and every element carries a definite status.
// Nothing the interpreter produced is trusted; this pass is what gates
// execution.
func validate(candidates []entity.InterpretedCommand, snapshot entity.InventorySnapshot) []entity.InterpretedCommand {
	validated := make([]entity.InterpretedCommand, len(candidates))

	for i, c := range candidates {
		validated[i] = validateOne(c, snapshot)
	}

	return validated
}

func validateOne(c entity.InterpretedCommand, snapshot entity.InventorySnapshot) entity.InterpretedCommand {
	if c.Status == entity.CommandStatusInvalid {
		if c.Error == "" {
			c.Error = "command rejected during interpretation"
		}
		return c
	}

	switch c.Action {
	case entity.ActionSet, entity.ActionAdd, entity.ActionSubtract:
	default:
		c.Status = entity.CommandStatusInvalid
		c.Error = fmt.Sprintf("Invalid action: %s", c.Action)
		return c
	}

	if c.Quantity < 0 {
		c.Status = entity.CommandStatusInvalid
		c.Error = "quantity must not be negative"
		return c
	}

	if _, ok := snapshot.FindItem(c.ItemID, c.ItemName); !ok {
		c.Status = entity.CommandStatusInvalid
		c.Error = fmt.Sprintf("unknown item %q", c.ItemName)
		return c
	}

	if c.UnitOfMeasureID != "" || c.UnitOfMeasureName != "" {
		if !snapshot.FindUnit(c.UnitOfMeasureID, c.UnitOfMeasureName) {
			c.Status = entity.CommandStatusInvalid
			c.Error = fmt.Sprintf("unknown unit of measure %q", c.UnitOfMeasureName)
			return c
		}
	}

	c.Status = entity.CommandStatusValid
	c.Error = ""
	return c
}

package commandService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"CafeInventory/internal/api/inventory"
	inventoryRepository "CafeInventory/internal/api/inventory/repository"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/sirupsen/logrus"
)

// execute applies each candidate in order. Invalid candidates are surfaced as
// failed outcomes without touching storage; a failure of one candidate never
// stops its siblings. The snapshot is only used upstream for identity checks,
// so every mutation re-fetches the live record first.
func (s *commandService) execute(ctx context.Context, userID string, candidates []entity.InterpretedCommand) []entity.ExecutionOutcome {
	outcomes := make([]entity.ExecutionOutcome, 0, len(candidates))

	for _, c := range candidates {
		if c.Status != entity.CommandStatusValid {
			outcomes = append(outcomes, entity.ExecutionOutcome{
				Command:      c,
				ErrorMessage: c.Error,
			})
			continue
		}

		outcomes = append(outcomes, s.executeOne(ctx, userID, c))
	}

	return outcomes
}

func (s *commandService) executeOne(ctx context.Context, userID string, c entity.InterpretedCommand) entity.ExecutionOutcome {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client for command execution")
		return entity.ExecutionOutcome{
			Command:      c,
			ErrorMessage: fmt.Sprintf("could not update %s: storage unavailable", c.ItemName),
		}
	}
	defer repo.Rollback()

	var outcome entity.ExecutionOutcome

	switch c.Action {
	case entity.ActionSet:
		outcome = s.executeSet(ctx, repo, c)
	case entity.ActionAdd:
		outcome = s.executeAdd(ctx, repo, c)
	case entity.ActionSubtract:
		outcome = s.executeSubtract(ctx, repo, c)
	default:
		return entity.ExecutionOutcome{
			Command:      c,
			ErrorMessage: fmt.Sprintf("Invalid action: %s", c.Action),
		}
	}

	if outcome.Failed() {
		return outcome
	}

	removedRecord := c.Action == entity.ActionSubtract && c.Quantity == 0

	if !removedRecord {
		if err := s.recordCount(ctx, repo, userID, c.ItemID, outcome.ResultingQuantity); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"item_id":    c.ItemID,
				"error":      err.Error(),
			}).Warn("Failed to record inventory count attribution")
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit command execution")
		return entity.ExecutionOutcome{
			Command:      c,
			ErrorMessage: fmt.Sprintf("could not update %s: storage unavailable", c.ItemName),
		}
	}

	return outcome
}

func (s *commandService) executeSet(ctx context.Context, repo inventoryRepository.Client, c entity.InterpretedCommand) entity.ExecutionOutcome {
	item, err := repo.Items.GetItemByID(ctx, c.ItemID)
	if err != nil {
		return itemLookupFailure(c, err)
	}

	item.Quantity = c.Quantity
	if c.UnitOfMeasureID != "" {
		item.UnitOfMeasureID = c.UnitOfMeasureID
	}

	if err := repo.Items.UpdateItem(ctx, item); err != nil {
		return itemLookupFailure(c, err)
	}

	return entity.ExecutionOutcome{
		Command:           c,
		ResultingQuantity: c.Quantity,
		Message:           fmt.Sprintf("Set %s to %s", c.ItemName, formatQuantity(c.Quantity, c.UnitOfMeasureName)),
	}
}

func (s *commandService) executeAdd(ctx context.Context, repo inventoryRepository.Client, c entity.InterpretedCommand) entity.ExecutionOutcome {
	item, err := repo.Items.GetItemByID(ctx, c.ItemID)
	if err != nil {
		if !errors.Is(err, inventory.ErrItemNotFound) {
			return itemLookupFailure(c, err)
		}
		return s.createFromAdd(ctx, repo, c)
	}

	newQuantity := item.Quantity + c.Quantity
	if err := repo.Items.UpdateItemQuantity(ctx, item.ID, newQuantity); err != nil {
		return itemLookupFailure(c, err)
	}

	return entity.ExecutionOutcome{
		Command:           c,
		ResultingQuantity: newQuantity,
		Message:           fmt.Sprintf("Added %s to %s, now %s", formatQuantity(c.Quantity, c.UnitOfMeasureName), c.ItemName, formatQuantity(newQuantity, c.UnitOfMeasureName)),
	}
}

// createFromAdd covers the record disappearing between snapshot and
// execution: an add against a missing record creates it fresh.
func (s *commandService) createFromAdd(ctx context.Context, repo inventoryRepository.Client, c entity.InterpretedCommand) entity.ExecutionOutcome {
	itemID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return itemLookupFailure(c, err)
	}

	now := time.Now()
	item := entity.Item{
		ID:              itemID,
		Name:            c.ItemName,
		Quantity:        c.Quantity,
		UnitOfMeasureID: c.UnitOfMeasureID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := repo.Items.CreateItem(ctx, item); err != nil {
		return itemLookupFailure(c, err)
	}

	return entity.ExecutionOutcome{
		Command:           c,
		ResultingQuantity: c.Quantity,
		Message:           fmt.Sprintf("Added new item %s with %s", c.ItemName, formatQuantity(c.Quantity, c.UnitOfMeasureName)),
	}
}

func (s *commandService) executeSubtract(ctx context.Context, repo inventoryRepository.Client, c entity.InterpretedCommand) entity.ExecutionOutcome {
	item, err := repo.Items.GetItemByID(ctx, c.ItemID)
	if err != nil {
		return itemLookupFailure(c, err)
	}

	// Subtract with no quantity means the item record goes away entirely.
	if c.Quantity == 0 {
		if err := repo.Items.DeleteItem(ctx, item.ID); err != nil {
			return itemLookupFailure(c, err)
		}
		return entity.ExecutionOutcome{
			Command: c,
			Message: fmt.Sprintf("Removed %s from inventory", c.ItemName),
		}
	}

	newQuantity := item.Quantity - c.Quantity
	if newQuantity < 0 {
		newQuantity = 0
	}

	if err := repo.Items.UpdateItemQuantity(ctx, item.ID, newQuantity); err != nil {
		return itemLookupFailure(c, err)
	}

	return entity.ExecutionOutcome{
		Command:           c,
		ResultingQuantity: newQuantity,
		Message:           fmt.Sprintf("Subtracted %s from %s, now %s", formatQuantity(c.Quantity, c.UnitOfMeasureName), c.ItemName, formatQuantity(newQuantity, c.UnitOfMeasureName)),
	}
}

func (s *commandService) recordCount(ctx context.Context, repo inventoryRepository.Client, userID, itemID string, count float64) error {
	countID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	now := time.Now()
	return repo.Counts.CreateInventoryCount(ctx, entity.InventoryCount{
		ID:        countID,
		ItemID:    itemID,
		UserID:    userID,
		Count:     count,
		CountedAt: now,
		CreatedAt: now,
	})
}

func itemLookupFailure(c entity.InterpretedCommand, err error) entity.ExecutionOutcome {
	if errors.Is(err, inventory.ErrItemNotFound) {
		return entity.ExecutionOutcome{
			Command:      c,
			ErrorMessage: fmt.Sprintf("could not update %s: item not found", c.ItemName),
		}
	}
	return entity.ExecutionOutcome{
		Command:      c,
		ErrorMessage: fmt.Sprintf("could not update %s: %s", c.ItemName, err.Error()),
	}
}

func formatQuantity(quantity float64, unitName string) string {
	if unitName == "" {
		return trimFloat(quantity)
	}
	return trimFloat(quantity) + " " + unitName
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

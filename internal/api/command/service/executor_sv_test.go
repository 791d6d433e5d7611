package commandService

import (
	"context"
	"strings"
	"testing"

	"CafeInventory/internal/entity"
)

func steviaItem(quantity float64) entity.Item {
	return entity.Item{ID: "item-stevia", Name: "stevia", Quantity: quantity, UnitOfMeasureID: "uom-box"}
}

func paperWrapItem(quantity float64) entity.Item {
	return entity.Item{ID: "item-paper-wrap", Name: "paper wrap", Quantity: quantity, UnitOfMeasureID: "uom-pack"}
}

func newExecutorFixture(items ...entity.Item) (*commandService, *fakeItemStore, *fakeCountStore) {
	store := newFakeItemStore(items...)
	counts := &fakeCountStore{}
	repo := &fakeInventoryRepo{items: store, uoms: &fakeUOMStore{}, counts: counts}
	svc := newTestService(repo, nil, &fakeCompleter{}, nil)
	return svc, store, counts
}

func validCommand(action entity.CommandAction, itemID, itemName string, quantity float64) entity.InterpretedCommand {
	return entity.InterpretedCommand{
		Action:            action,
		ItemID:            itemID,
		ItemName:          itemName,
		Quantity:          quantity,
		UnitOfMeasureName: "box",
		Status:            entity.CommandStatusValid,
	}
}

func TestExecuteSetIsAbsolute(t *testing.T) {
	svc, store, counts := newExecutorFixture(steviaItem(1))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionSet, "item-stevia", "stevia", 0.5),
	})

	if outcomes[0].Failed() {
		t.Fatalf("set failed: %s", outcomes[0].ErrorMessage)
	}
	if got := store.quantity("item-stevia"); got != 0.5 {
		t.Errorf("stored quantity = %v, want 0.5", got)
	}
	if outcomes[0].ResultingQuantity != 0.5 {
		t.Errorf("resulting quantity = %v, want 0.5", outcomes[0].ResultingQuantity)
	}
	if len(counts.rows) != 1 || counts.rows[0].UserID != "user-1" {
		t.Errorf("expected one attributed count row, got %+v", counts.rows)
	}
}

func TestExecuteSetIsIdempotent(t *testing.T) {
	svc, store, _ := newExecutorFixture(steviaItem(1))
	cmd := validCommand(entity.ActionSet, "item-stevia", "stevia", 4)

	svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{cmd})
	svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{cmd})

	if got := store.quantity("item-stevia"); got != 4 {
		t.Errorf("stored quantity after repeated set = %v, want 4", got)
	}
}

func TestExecuteAddIncrements(t *testing.T) {
	svc, store, _ := newExecutorFixture(paperWrapItem(3))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionAdd, "item-paper-wrap", "paper wrap", 10),
	})

	if outcomes[0].Failed() {
		t.Fatalf("add failed: %s", outcomes[0].ErrorMessage)
	}
	if got := store.quantity("item-paper-wrap"); got != 13 {
		t.Errorf("stored quantity = %v, want 13", got)
	}
}

func TestExecuteAddCreatesMissingRecord(t *testing.T) {
	svc, store, _ := newExecutorFixture()

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionAdd, "item-stevia", "stevia", 2),
	})

	if outcomes[0].Failed() {
		t.Fatalf("add failed: %s", outcomes[0].ErrorMessage)
	}
	all, _ := store.GetAllItems(context.Background())
	if len(all) != 1 {
		t.Fatalf("store has %d items, want 1 created", len(all))
	}
	if all[0].Name != "stevia" || all[0].Quantity != 2 {
		t.Errorf("created item = %+v, want stevia with quantity 2", all[0])
	}
}

func TestExecuteSubtractClampsAtZero(t *testing.T) {
	svc, store, _ := newExecutorFixture(steviaItem(3))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionSubtract, "item-stevia", "stevia", 10),
	})

	if outcomes[0].Failed() {
		t.Fatalf("subtract failed: %s", outcomes[0].ErrorMessage)
	}
	if got := store.quantity("item-stevia"); got != 0 {
		t.Errorf("stored quantity = %v, want clamp at 0", got)
	}
	if outcomes[0].ResultingQuantity != 0 {
		t.Errorf("resulting quantity = %v, want 0", outcomes[0].ResultingQuantity)
	}
}

func TestExecuteSubtractWithoutQuantityDeletesRecord(t *testing.T) {
	svc, store, counts := newExecutorFixture(steviaItem(3))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionSubtract, "item-stevia", "stevia", 0),
	})

	if outcomes[0].Failed() {
		t.Fatalf("removal failed: %s", outcomes[0].ErrorMessage)
	}
	if store.has("item-stevia") {
		t.Error("item record still present, want full removal")
	}
	if len(counts.rows) != 0 {
		t.Errorf("count rows written for a removed record: %+v", counts.rows)
	}
}

func TestExecuteItemNotFoundIsIsolated(t *testing.T) {
	svc, store, _ := newExecutorFixture(paperWrapItem(3))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionSet, "item-stevia", "stevia", 5),
		validCommand(entity.ActionAdd, "item-paper-wrap", "paper wrap", 10),
	})

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if !outcomes[0].Failed() {
		t.Error("missing item should produce a failed outcome")
	}
	if !strings.Contains(outcomes[0].ErrorMessage, "stevia") {
		t.Errorf("error %q does not name the item", outcomes[0].ErrorMessage)
	}
	if outcomes[1].Failed() {
		t.Errorf("sibling command aborted: %s", outcomes[1].ErrorMessage)
	}
	if got := store.quantity("item-paper-wrap"); got != 13 {
		t.Errorf("sibling quantity = %v, want 13", got)
	}
}

func TestExecuteSkipsInvalidCandidates(t *testing.T) {
	svc, store, _ := newExecutorFixture(steviaItem(3))

	invalid := entity.InterpretedCommand{
		Action:   entity.ActionSet,
		ItemName: "unicorn dust",
		Quantity: 5,
		Status:   entity.CommandStatusInvalid,
		Error:    `unknown item "unicorn dust"`,
	}

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{invalid})

	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if !outcomes[0].Failed() {
		t.Error("invalid candidate must surface as a failed outcome")
	}
	if got := store.quantity("item-stevia"); got != 3 {
		t.Errorf("storage touched for invalid candidate: quantity = %v", got)
	}
}

func TestExecuteScenarioSteviaAndPaperWrap(t *testing.T) {
	svc, store, _ := newExecutorFixture(steviaItem(1), paperWrapItem(3))

	outcomes := svc.execute(context.Background(), "user-1", []entity.InterpretedCommand{
		validCommand(entity.ActionSet, "item-stevia", "stevia", 0.5),
		validCommand(entity.ActionAdd, "item-paper-wrap", "paper wrap", 10),
	})

	for i, o := range outcomes {
		if o.Failed() {
			t.Fatalf("outcome %d failed: %s", i, o.ErrorMessage)
		}
	}
	if got := store.quantity("item-stevia"); got != 0.5 {
		t.Errorf("stevia = %v, want 0.5", got)
	}
	if got := store.quantity("item-paper-wrap"); got != 13 {
		t.Errorf("paper wrap = %v, want 13", got)
	}
}

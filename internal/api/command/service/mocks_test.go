package commandService

import (
	"context"
	"fmt"
	"io"
	"sync"

	commandRepository "CafeInventory/internal/api/command/repository"
	"CafeInventory/internal/api/inventory"
	inventoryRepository "CafeInventory/internal/api/inventory/repository"
	"CafeInventory/internal/entity"
	"CafeInventory/pkg/utils"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeItemStore struct {
	mu      sync.Mutex
	items   map[string]entity.Item
	deleted []string
	getErr  error
}

func newFakeItemStore(items ...entity.Item) *fakeItemStore {
	s := &fakeItemStore{items: make(map[string]entity.Item)}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeItemStore) CreateItem(_ context.Context, item entity.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *fakeItemStore) GetItemByID(_ context.Context, id string) (entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return entity.Item{}, s.getErr
	}
	item, ok := s.items[id]
	if !ok {
		return entity.Item{}, inventory.ErrItemNotFound
	}
	return item, nil
}

func (s *fakeItemStore) GetItemByName(_ context.Context, name string) (entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Name == name {
			return item, nil
		}
	}
	return entity.Item{}, inventory.ErrItemNotFound
}

func (s *fakeItemStore) GetAllItems(_ context.Context) ([]entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entity.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *fakeItemStore) UpdateItem(_ context.Context, item entity.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return inventory.ErrItemNotFound
	}
	s.items[item.ID] = item
	return nil
}

func (s *fakeItemStore) UpdateItemQuantity(_ context.Context, id string, quantity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return inventory.ErrItemNotFound
	}
	item.Quantity = quantity
	s.items[id] = item
	return nil
}

func (s *fakeItemStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return inventory.ErrItemNotFound
	}
	delete(s.items, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeItemStore) quantity(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Quantity
}

func (s *fakeItemStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok
}

type fakeUOMStore struct {
	uoms []entity.UnitOfMeasure
}

func (s *fakeUOMStore) CreateUnitOfMeasure(_ context.Context, uom entity.UnitOfMeasure) error {
	s.uoms = append(s.uoms, uom)
	return nil
}

func (s *fakeUOMStore) GetUnitOfMeasureByID(_ context.Context, id string) (entity.UnitOfMeasure, error) {
	for _, uom := range s.uoms {
		if uom.ID == id {
			return uom, nil
		}
	}
	return entity.UnitOfMeasure{}, inventory.ErrUnitOfMeasureNotFound
}

func (s *fakeUOMStore) GetAllUnitsOfMeasure(_ context.Context) ([]entity.UnitOfMeasure, error) {
	return s.uoms, nil
}

type fakeVendorStore struct{}

func (s *fakeVendorStore) CreateVendor(_ context.Context, _ entity.Vendor) error { return nil }
func (s *fakeVendorStore) GetVendorByID(_ context.Context, _ string) (entity.Vendor, error) {
	return entity.Vendor{}, inventory.ErrVendorNotFound
}
func (s *fakeVendorStore) GetAllVendors(_ context.Context) ([]entity.Vendor, error) {
	return nil, nil
}
func (s *fakeVendorStore) UpdateVendor(_ context.Context, _ entity.Vendor) error { return nil }
func (s *fakeVendorStore) DeleteVendor(_ context.Context, _ string) error        { return nil }

type fakeCountStore struct {
	mu   sync.Mutex
	rows []entity.InventoryCount
}

func (s *fakeCountStore) CreateInventoryCount(_ context.Context, count entity.InventoryCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, count)
	return nil
}

type fakeInventoryRepo struct {
	items   *fakeItemStore
	uoms    *fakeUOMStore
	counts  *fakeCountStore
	openErr error
}

func (r *fakeInventoryRepo) NewClient(bool) (inventoryRepository.Client, error) {
	if r.openErr != nil {
		return inventoryRepository.Client{}, r.openErr
	}
	return inventoryRepository.Client{
		Items:          r.items,
		UnitsOfMeasure: r.uoms,
		Vendors:        &fakeVendorStore{},
		Counts:         r.counts,
		Commit:         func() error { return nil },
		Rollback:       func() error { return nil },
	}, nil
}

type fakeCommandLogStore struct {
	mu   sync.Mutex
	logs []entity.CommandLog
}

func (s *fakeCommandLogStore) CreateCommandLog(_ context.Context, log entity.CommandLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeCommandLogStore) GetCommandLogsByUserID(_ context.Context, userID string, limit, offset int) ([]entity.CommandLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.CommandLog
	for _, l := range s.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeCommandLogStore) CountCommandLogsByUserID(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.logs {
		if l.UserID == userID {
			total++
		}
	}
	return total, nil
}

type fakeCommandRepo struct {
	logs *fakeCommandLogStore
}

func (r *fakeCommandRepo) NewClient(bool) (commandRepository.Client, error) {
	return commandRepository.Client{
		CommandLogs: r.logs,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
	messages []string
}

func (c *fakeCompleter) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	c.prompts = append(c.prompts, systemPrompt)
	c.messages = append(c.messages, userMessage)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

type fakeS3 struct {
	uploads    map[string][]byte
	presignErr error
}

func (s *fakeS3) UploadBytes(fileName string, data []byte) (string, error) {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[fileName] = data
	return "https://bucket.s3.amazonaws.com/" + fileName, nil
}

func (s *fakeS3) PresignUrl(fileUrl string) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fileUrl + "?signature=test", nil
}

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (t *fakeTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	t.calls++
	if t.err != nil {
		return "", t.err
	}
	return t.transcript, nil
}

func newTestService(invRepo *fakeInventoryRepo, cmdRepo *fakeCommandRepo, completer Completer, transcriber *fakeTranscriber) *commandService {
	if cmdRepo == nil {
		cmdRepo = &fakeCommandRepo{logs: &fakeCommandLogStore{}}
	}
	svc := NewCommandService(newTestLogger(), cmdRepo, invRepo, transcriber, completer, nil, utils.New())
	return svc.(*commandService)
}

func testSnapshot() entity.InventorySnapshot {
	return entity.InventorySnapshot{
		Entries: []entity.SnapshotEntry{
			{ItemID: "item-stevia", ItemName: "stevia", UnitOfMeasureID: "uom-box", UnitOfMeasureName: "box"},
			{ItemID: "item-paper-wrap", ItemName: "paper wrap", UnitOfMeasureID: "uom-pack", UnitOfMeasureName: "pack"},
		},
	}
}

func candidateJSON(cs ...entity.InterpretedCommand) string {
	out := "["
	for i, c := range cs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"action":%q,"item_id":%q,"item_name":%q,"quantity":%v,"unit_of_measure_id":%q,"unit_of_measure_name":%q,"status":%q,"error":%q,"raw_command":%q}`,
			string(c.Action), c.ItemID, c.ItemName, c.Quantity, c.UnitOfMeasureID, c.UnitOfMeasureName, string(c.Status), c.Error, c.RawCommand)
	}
	return out + "]"
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	domainRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/domain/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/apperror"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/pagination"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/printer"
)

type fakeCatalogGateway struct {
	items   []entity.CatalogItem
	err     error
	release chan struct{} // when non-nil, ListItems blocks until closed
	calls   int
}

func (f *fakeCatalogGateway) ListItems(ctx context.Context, storeID string) ([]entity.CatalogItem, error) {
	f.calls++
	if f.release != nil {
		<-f.release
	}
	return f.items, f.err
}

type fakeOrderGateway struct {
	remoteID string
	err      error
	release  chan struct{}
	calls    int
}

func (f *fakeOrderGateway) CreateOrder(ctx context.Context, sub *builder.Submission) (string, error) {
	f.calls++
	if f.release != nil {
		<-f.release
	}
	return f.remoteID, f.err
}

type fakeRecordRepo struct {
	created []*entity.OrderRecord
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *entity.OrderRecord) error {
	f.created = append(f.created, record)
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderRecord, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeRecordRepo) List(ctx context.Context, params *domainRepo.OrderRecordFilterParams) (*pagination.PaginatedResult[entity.OrderRecord], error) {
	return nil, nil
}

func testStore() *entity.Store {
	return &entity.Store{ID: "store-1", Name: "Chai Point", Slug: "chaipoint"}
}

func testCatalog() []entity.CatalogItem {
	price := int64(2500)
	return []entity.CatalogItem{
		{ID: "item-samosa", Name: "Samosa", CategoryName: "Snacks", Price: &price},
		{ID: "item-coffee", Name: "Coffee", CategoryName: "Beverages", Variants: []entity.Variant{
			{ID: "v-small", Name: "Small", Price: 5000},
			{ID: "v-large", Name: "Large", Price: 8000},
		}},
	}
}

// waitFor polls until cond is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func newTestService(catalogGW *fakeCatalogGateway, orderGW *fakeOrderGateway) (*BuilderService, *fakeRecordRepo) {
	repo := &fakeRecordRepo{}
	svc := NewBuilderService(catalogGW, orderGW, repo, printer.NewNullPrinter(), time.Hour)
	return svc, repo
}

func TestOpenLoadsCatalog(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	svc, _ := newTestService(catalogGW, &fakeOrderGateway{})

	res := svc.Open(testStore())
	if res.StoreID != "store-1" {
		t.Fatalf("StoreID = %q, want store-1", res.StoreID)
	}

	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})

	groups, err := svc.Catalog(res.SessionID)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Category != "Beverages" {
		t.Errorf("first group = %q, want Beverages", groups[0].Category)
	}
}

func TestCatalogUnavailableWhileLoading(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog(), release: make(chan struct{})}
	svc, _ := newTestService(catalogGW, &fakeOrderGateway{})

	res := svc.Open(testStore())

	if _, err := svc.Catalog(res.SessionID); err == nil {
		t.Error("expected error while catalog fetch is outstanding")
	}

	if _, err := svc.AddItem(res.SessionID, "item-samosa"); err == nil {
		t.Error("expected AddItem to fail before catalog is loaded")
	}

	close(catalogGW.release)
}

func TestRefreshCatalogAfterFailure(t *testing.T) {
	catalogGW := &fakeCatalogGateway{err: errors.New("backend unreachable")}
	svc, _ := newTestService(catalogGW, &fakeOrderGateway{})

	res := svc.Open(testStore())

	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err != nil && err.Error() == "backend unreachable"
	})

	// Second attempt succeeds
	catalogGW.err = nil
	catalogGW.items = testCatalog()
	if err := svc.RefreshCatalog(res.SessionID); err != nil {
		t.Fatalf("RefreshCatalog: %v", err)
	}

	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})
}

func TestLateCatalogResultDiscardedAfterClose(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog(), release: make(chan struct{})}
	svc, _ := newTestService(catalogGW, &fakeOrderGateway{})

	res := svc.Open(testStore())
	sess, err := svc.get(res.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := svc.Close(res.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Let the in-flight fetch land after the session closed
	close(catalogGW.release)
	waitFor(t, func() bool {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return !sess.fetchInFlight
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.catalogReady || sess.catalog != nil {
		t.Error("late catalog result applied to a closed session")
	}
}

func TestMutationsAfterClose(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	svc, _ := newTestService(catalogGW, &fakeOrderGateway{})

	res := svc.Open(testStore())
	if err := svc.Close(res.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := svc.AddItem(res.SessionID, "item-samosa"); err == nil {
		t.Error("expected error adding to a closed session")
	}
}

func TestSubmitJournalsAndResets(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	orderGW := &fakeOrderGateway{remoteID: "remote-42"}
	svc, repo := newTestService(catalogGW, orderGW)

	res := svc.Open(testStore())
	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})

	if _, err := svc.AddItem(res.SessionID, "item-samosa"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	name := "Asha"
	if _, err := svc.UpdateDraft(res.SessionID, &DraftInput{CustomerName: &name}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	result, err := svc.Submit(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RemoteOrderID != "remote-42" {
		t.Errorf("RemoteOrderID = %q, want remote-42", result.RemoteOrderID)
	}
	if result.Totals.Total != 2500 {
		t.Errorf("Total = %d, want 2500", result.Totals.Total)
	}

	if len(repo.created) != 1 {
		t.Fatalf("journaled %d records, want 1", len(repo.created))
	}
	record := repo.created[0]
	if record.StoreID != "store-1" || record.RemoteOrderID != "remote-42" {
		t.Errorf("unexpected journal record: %+v", record)
	}
	if record.CustomerName != "Asha" {
		t.Errorf("CustomerName = %q, want Asha", record.CustomerName)
	}

	// Cart starts clean for the next customer
	view, err := svc.Snapshot(res.SessionID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("cart has %d lines after submit, want 0", len(view.Lines))
	}
	if view.Customer.Name != "" {
		t.Errorf("customer carried over after submit: %q", view.Customer.Name)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	orderGW := &fakeOrderGateway{remoteID: "remote-1"}
	svc, _ := newTestService(catalogGW, orderGW)

	res := svc.Open(testStore())
	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})

	if _, err := svc.Submit(context.Background(), res.SessionID); err == nil {
		t.Fatal("expected error submitting an empty cart")
	}
	if orderGW.calls != 0 {
		t.Errorf("remote API called %d times for an invalid cart, want 0", orderGW.calls)
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	orderGW := &fakeOrderGateway{remoteID: "remote-7", release: make(chan struct{})}
	svc, _ := newTestService(catalogGW, orderGW)

	res := svc.Open(testStore())
	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})
	if _, err := svc.AddItem(res.SessionID, "item-samosa"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), res.SessionID)
		firstDone <- err
	}()

	sess, err := svc.get(res.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	waitFor(t, func() bool {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.submitting
	})

	// Second submit while the first is outstanding
	if _, err := svc.Submit(context.Background(), res.SessionID); err == nil {
		t.Error("expected conflict on second submit")
	}

	// Cart mutation while submitting is also rejected
	if _, err := svc.ChangeQuantity(res.SessionID, 0, 1); err == nil {
		t.Error("expected conflict on mutation during submit")
	}

	close(orderGW.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if orderGW.calls != 1 {
		t.Errorf("remote API called %d times, want 1", orderGW.calls)
	}
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	catalogGW := &fakeCatalogGateway{items: testCatalog()}
	orderGW := &fakeOrderGateway{err: apperror.NewAppError(502, "Backend unreachable")}
	svc, repo := newTestService(catalogGW, orderGW)

	res := svc.Open(testStore())
	waitFor(t, func() bool {
		_, err := svc.Catalog(res.SessionID)
		return err == nil
	})
	if _, err := svc.AddItem(res.SessionID, "item-samosa"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := svc.Submit(context.Background(), res.SessionID); err == nil {
		t.Fatal("expected submit error")
	}

	if len(repo.created) != 0 {
		t.Errorf("journaled %d records on failure, want 0", len(repo.created))
	}

	view, err := svc.Snapshot(res.SessionID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Errorf("cart has %d lines after failed submit, want 1", len(view.Lines))
	}

	// The session is usable again
	orderGW.err = nil
	orderGW.remoteID = "remote-9"
	result, err := svc.Submit(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if result.RemoteOrderID != "remote-9" {
		t.Errorf("RemoteOrderID = %q, want remote-9", result.RemoteOrderID)
	}
}

func TestUnknownSession(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogGateway{}, &fakeOrderGateway{})

	if _, err := svc.Snapshot(uuid.New()); err == nil {
		t.Error("expected error for unknown session")
	}
	if _, err := svc.Submit(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown session")
	}
}

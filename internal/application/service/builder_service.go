package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/enum"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/gateway"
	domainRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/domain/repository"
	infraRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/apperror"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/printer"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/utils"
)

// builderSession is one counter's in-progress order. All access goes through
// its mutex; the builder core itself is single-threaded by contract.
type builderSession struct {
	id        uuid.UUID
	storeID   string
	storeName string

	mu            sync.Mutex
	cart          *builder.Builder
	catalog       []entity.CatalogItem
	catalogReady  bool
	catalogErr    error
	fetchInFlight bool
	submitting    bool
	closed        bool
	lastTouched   time.Time
}

// BuilderService owns all open order-builder sessions. Sessions are fully
// independent: no cart state is shared between them.
type BuilderService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*builderSession

	catalogGW  gateway.CatalogGateway
	orderGW    gateway.OrderGateway
	recordRepo domainRepo.OrderRecordRepository
	printer    printer.Printer
	idleTTL    time.Duration
}

// NewBuilderService creates the session manager and starts the idle-session
// janitor.
func NewBuilderService(
	catalogGW gateway.CatalogGateway,
	orderGW gateway.OrderGateway,
	recordRepo domainRepo.OrderRecordRepository,
	p printer.Printer,
	idleTTL time.Duration,
) *BuilderService {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	s := &BuilderService{
		sessions:   make(map[uuid.UUID]*builderSession),
		catalogGW:  catalogGW,
		orderGW:    orderGW,
		recordRepo: recordRepo,
		printer:    p,
		idleTTL:    idleTTL,
	}

	go s.cleanupLoop()

	return s
}

// OpenResult is returned when a builder session is opened
type OpenResult struct {
	SessionID uuid.UUID `json:"session_id"`
	StoreID   string    `json:"store_id"`
}

// Open creates an independent builder session for the store and kicks off
// the session's single catalog fetch.
func (s *BuilderService) Open(store *entity.Store) *OpenResult {
	sess := &builderSession{
		id:            uuid.New(),
		storeID:       store.ID,
		storeName:     store.Name,
		cart:          builder.New(),
		fetchInFlight: true,
		lastTouched:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	go s.fetchCatalog(sess)

	return &OpenResult{SessionID: sess.id, StoreID: store.ID}
}

// fetchCatalog performs the one outstanding catalog request for a session.
// A result that arrives after the session closed is discarded, never applied.
func (s *BuilderService) fetchCatalog(sess *builderSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	items, err := s.catalogGW.ListItems(ctx, sess.storeID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.fetchInFlight = false
	if sess.closed {
		// Late arrival for a closed builder; drop it
		return
	}
	if err != nil {
		sess.catalogErr = err
		return
	}
	sess.catalog = items
	sess.catalogReady = true
	sess.catalogErr = nil
}

// RefreshCatalog re-triggers the catalog fetch after a failure. There is no
// automatic retry; this is the user's explicit re-trigger.
func (s *BuilderService) RefreshCatalog(sessionID uuid.UUID) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return apperror.ErrSessionClosed
	}
	if sess.fetchInFlight {
		return apperror.NewConflictError("Catalog fetch already in progress")
	}
	sess.fetchInFlight = true
	sess.catalogErr = nil
	sess.lastTouched = time.Now()

	go s.fetchCatalog(sess)
	return nil
}

// Catalog returns the session's item picker, grouped per the picker
// contract. While the fetch is outstanding it reports unavailable; a failed
// fetch surfaces its error until the user refreshes.
func (s *BuilderService) Catalog(sessionID uuid.UUID) ([]builder.CategoryGroup, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.catalogErr != nil {
		return nil, sess.catalogErr
	}
	if !sess.catalogReady {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "Catalog is still loading")
	}
	return builder.GroupCatalog(sess.catalog), nil
}

// CartView is a snapshot of a session's cart and derived totals
type CartView struct {
	SessionID uuid.UUID          `json:"session_id"`
	StoreID   string             `json:"store_id"`
	Lines     []builder.CartLine `json:"lines"`
	Totals    builder.Totals     `json:"totals"`
	Customer  builder.Customer   `json:"customer"`
	Payment   builder.Payment    `json:"payment"`
}

func snapshot(sess *builderSession) *CartView {
	return &CartView{
		SessionID: sess.id,
		StoreID:   sess.storeID,
		Lines:     sess.cart.Lines(),
		Totals:    sess.cart.Totals(),
		Customer:  sess.cart.Customer(),
		Payment:   sess.cart.Payment(),
	}
}

// Snapshot returns the session's current cart state
func (s *BuilderService) Snapshot(sessionID uuid.UUID) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(sess), nil
}

// AddItem adds a catalog item to the cart by its id
func (s *BuilderService) AddItem(sessionID uuid.UUID, itemID string) (*CartView, error) {
	return s.mutate(sessionID, func(sess *builderSession) error {
		if !sess.catalogReady {
			return apperror.NewBadRequestError("Catalog not loaded yet")
		}
		for i := range sess.catalog {
			if sess.catalog[i].ID == itemID {
				return mapBuilderErr(sess.cart.AddItem(sess.catalog[i]))
			}
		}
		return apperror.NewNotFoundError("Catalog item")
	})
}

// SelectVariant sets or clears the variant selection of a cart line
func (s *BuilderService) SelectVariant(sessionID uuid.UUID, index int, variantID string) (*CartView, error) {
	return s.mutate(sessionID, func(sess *builderSession) error {
		return mapBuilderErr(sess.cart.SelectVariant(index, variantID))
	})
}

// ChangeQuantity adjusts a cart line's quantity by delta
func (s *BuilderService) ChangeQuantity(sessionID uuid.UUID, index, delta int) (*CartView, error) {
	return s.mutate(sessionID, func(sess *builderSession) error {
		return mapBuilderErr(sess.cart.ChangeQuantity(index, delta))
	})
}

// RemoveLine removes a cart line
func (s *BuilderService) RemoveLine(sessionID uuid.UUID, index int) (*CartView, error) {
	return s.mutate(sessionID, func(sess *builderSession) error {
		return mapBuilderErr(sess.cart.RemoveLine(index))
	})
}

// DraftInput carries partial updates to the order draft's header fields
type DraftInput struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerPhone *string  `json:"customer_phone"`
	PaymentMethod *string  `json:"payment_method"`
	PaymentStatus *string  `json:"payment_status"`
	Discount      *float64 `json:"discount"`
	TaxPercent    *float64 `json:"tax_percent"`
}

// UpdateDraft applies the provided draft fields; absent fields are untouched
func (s *BuilderService) UpdateDraft(sessionID uuid.UUID, input *DraftInput) (*CartView, error) {
	return s.mutate(sessionID, func(sess *builderSession) error {
		customer := sess.cart.Customer()
		if input.CustomerName != nil {
			customer.Name = *input.CustomerName
		}
		if input.CustomerPhone != nil {
			customer.Phone = *input.CustomerPhone
		}
		sess.cart.SetCustomer(customer)

		payment := sess.cart.Payment()
		if input.PaymentMethod != nil {
			method, ok := enum.ParsePaymentMethod(*input.PaymentMethod)
			if !ok {
				return apperror.NewBadRequestError("Unknown payment method")
			}
			payment.Method = method
		}
		if input.PaymentStatus != nil {
			status, ok := enum.ParsePaymentStatus(*input.PaymentStatus)
			if !ok {
				return apperror.NewBadRequestError("Unknown payment status")
			}
			payment.Status = status
		}
		if err := sess.cart.SetPayment(payment); err != nil {
			return apperror.NewBadRequestError(err.Error())
		}

		if input.Discount != nil {
			if err := sess.cart.SetDiscount(int64(*input.Discount * 100)); err != nil {
				return mapBuilderErr(err)
			}
		}
		if input.TaxPercent != nil {
			if err := sess.cart.SetTaxPercent(*input.TaxPercent); err != nil {
				return mapBuilderErr(err)
			}
		}
		return nil
	})
}

// SubmitResult is returned after the remote API accepts an order
type SubmitResult struct {
	RemoteOrderID string              `json:"remote_order_id"`
	RecordID      uuid.UUID           `json:"record_id"`
	Totals        builder.Totals      `json:"totals"`
	Record        *entity.OrderRecord `json:"record,omitempty"`
}

// Submit validates the cart, hands the payload to the remote API and, on
// success, journals the order and resets the builder for the next customer.
// A second submit while one is outstanding is rejected; so is any cart
// mutation.
func (s *BuilderService) Submit(ctx context.Context, sessionID uuid.UUID) (*SubmitResult, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, apperror.ErrSessionClosed
	}
	if sess.submitting {
		sess.mu.Unlock()
		return nil, apperror.NewConflictError("Submission already in progress")
	}

	sub, err := sess.cart.BuildSubmission(sess.storeID)
	if err != nil {
		sess.mu.Unlock()
		return nil, mapBuilderErr(err)
	}
	lines := sess.cart.Lines()
	sess.submitting = true
	sess.lastTouched = time.Now()
	sess.mu.Unlock()

	// Single attempt; the network call runs outside the session lock so a
	// slow remote API cannot wedge snapshot reads.
	remoteID, submitErr := s.orderGW.CreateOrder(ctx, sub)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting = false

	if submitErr != nil {
		// Cart stays intact; user may fix and re-trigger
		return nil, submitErr
	}

	totalItems := 0
	for _, it := range sub.Items {
		totalItems += it.Quantity
	}
	record := &entity.OrderRecord{
		StoreID:       sess.storeID,
		RemoteOrderID: remoteID,
		ReceiptNo:     utils.GenerateReceiptNo(),
		SessionID:     sess.id,
		CustomerName:  sub.Customer.Name,
		CustomerPhone: sub.Customer.Phone,
		PaymentMethod: sub.Payment.Method,
		PaymentStatus: sub.Payment.Status,
		Status:        enum.SubmissionStatusAccepted,
		TotalItems:    totalItems,
		SubTotal:      sub.Pricing.SubTotal,
		Discount:      sub.Pricing.Discount,
		TaxAmount:     sub.Pricing.TaxAmount,
		Total:         sub.Pricing.Total,
		SubmittedAt:   time.Now(),
	}

	recordCtx := infraRepo.WithStore(ctx, sess.storeID)
	if err := s.recordRepo.Create(recordCtx, record); err != nil {
		// The remote order exists either way; journal failure must not fail
		// the sale
		log.Printf("Warning: failed to journal order %s: %v", remoteID, err)
	}

	if s.printer != nil {
		data := printer.FormatOrderReceipt(sess.storeName, record.ReceiptNo, remoteID, lines, sub)
		if err := s.printer.Print(data); err != nil {
			log.Printf("Warning: receipt print failed for order %s: %v", remoteID, err)
		} else {
			record.Status = enum.SubmissionStatusPrinted
		}
	}

	totals := sub.Pricing
	sess.cart.Reset()

	return &SubmitResult{
		RemoteOrderID: remoteID,
		RecordID:      record.ID,
		Totals:        totals,
		Record:        record,
	}, nil
}

// Close discards a session. Any catalog result still in flight is dropped
// when it lands.
func (s *BuilderService) Close(sessionID uuid.UUID) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// StoreID reports which store a session belongs to
func (s *BuilderService) StoreID(sessionID uuid.UUID) (string, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return "", err
	}
	return sess.storeID, nil
}

func (s *BuilderService) get(sessionID uuid.UUID) (*builderSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Builder session")
	}
	return sess, nil
}

// mutate runs fn under the session lock and returns a fresh snapshot. Every
// mutation is applied atomically; a failed operation leaves the cart as it
// was.
func (s *BuilderService) mutate(sessionID uuid.UUID, fn func(*builderSession) error) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, apperror.ErrSessionClosed
	}
	if sess.submitting {
		return nil, apperror.NewConflictError("Submission in progress")
	}
	sess.lastTouched = time.Now()

	if err := fn(sess); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// cleanupLoop drops sessions idle past the TTL
func (s *BuilderService) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.idleTTL)

		s.mu.Lock()
		for id, sess := range s.sessions {
			sess.mu.Lock()
			stale := sess.lastTouched.Before(cutoff) && !sess.submitting
			if stale {
				sess.closed = true
			}
			sess.mu.Unlock()
			if stale {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// mapBuilderErr translates builder core errors into the HTTP error taxonomy
func mapBuilderErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, builder.ErrDuplicateItem):
		return apperror.NewConflictError(err.Error())
	case errors.Is(err, builder.ErrLineOutOfRange), errors.Is(err, builder.ErrNoVariants), errors.Is(err, builder.ErrNegativeAmount):
		return apperror.NewBadRequestError(err.Error())
	case errors.Is(err, builder.ErrEmptyCart), errors.Is(err, builder.ErrVariantNotSelected):
		return apperror.NewAppError(http.StatusUnprocessableEntity, err.Error())
	}
	return err
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	domainRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/domain/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/pagination"
)

// OrderService reads the gateway's journal of submitted orders
type OrderService struct {
	recordRepo domainRepo.OrderRecordRepository
}

// NewOrderService creates a new order journal service
func NewOrderService(recordRepo domainRepo.OrderRecordRepository) *OrderService {
	return &OrderService{recordRepo: recordRepo}
}

// ListRecords returns the store's submitted orders, newest first
func (s *OrderService) ListRecords(ctx context.Context, params *domainRepo.OrderRecordFilterParams) (*pagination.PaginatedResult[entity.OrderRecord], error) {
	return s.recordRepo.List(ctx, params)
}

// GetRecord returns one journal entry
func (s *OrderService) GetRecord(ctx context.Context, id uuid.UUID) (*entity.OrderRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

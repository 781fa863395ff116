package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/pagination"
)

// OrderRecordFilterParams filters the order journal listing
type OrderRecordFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// OrderRecordRepository persists the gateway's journal of submitted orders
type OrderRecordRepository interface {
	Create(ctx context.Context, record *entity.OrderRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderRecord, error)
	List(ctx context.Context, params *OrderRecordFilterParams) (*pagination.PaginatedResult[entity.OrderRecord], error)
}

// IdempotencyRepository persists processed submission keys
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}

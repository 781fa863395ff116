package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	domainRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/domain/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/apperror"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/pagination"
	"gorm.io/gorm"
)

type orderRecordRepository struct {
	db *gorm.DB
}

// NewOrderRecordRepository creates a new order journal repository
func NewOrderRecordRepository(db *gorm.DB) domainRepo.OrderRecordRepository {
	return &orderRecordRepository{db: db}
}

func (r *orderRecordRepository) Create(ctx context.Context, record *entity.OrderRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *orderRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderRecord, error) {
	var record entity.OrderRecord
	err := r.db.WithContext(ctx).
		Scopes(StoreScope(ctx)).
		Where("id = ?", id).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Order record")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *orderRecordRepository) List(ctx context.Context, params *domainRepo.OrderRecordFilterParams) (*pagination.PaginatedResult[entity.OrderRecord], error) {
	pageParams := params.Pagination
	if pageParams == nil {
		pageParams = pagination.DefaultPagination()
	}
	pageParams.Validate()

	query := r.db.WithContext(ctx).
		Model(&entity.OrderRecord{}).
		Scopes(StoreScope(ctx))

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where(
			"customer_name ILIKE ? OR customer_phone ILIKE ? OR remote_order_id ILIKE ? OR receipt_no ILIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []entity.OrderRecord
	err := query.
		Order("submitted_at DESC").
		Offset(pageParams.Offset()).
		Limit(pageParams.PerPage).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	page := pagination.NewPagination(pageParams.Page, pageParams.PerPage, total)
	return pagination.NewPaginatedResult(records, page), nil
}

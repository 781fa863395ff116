package gateway

import (
	"context"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
)

// StoreGateway looks up stores on the remote maitriPOS API
type StoreGateway interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Store, error)
}

// CatalogGateway fetches a store's public catalog from the remote API
type CatalogGateway interface {
	ListItems(ctx context.Context, storeID string) ([]entity.CatalogItem, error)
}

// OrderGateway submits a finished order to the remote API and returns the
// remote order identifier
type OrderGateway interface {
	CreateOrder(ctx context.Context, sub *builder.Submission) (string, error)
}

package service

import (
	"context"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/gateway"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/apperror"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/tenanthost"
)

// StorefrontService loads a merchant's public storefront from the host the
// visitor arrived on.
type StorefrontService struct {
	resolver  *tenanthost.Resolver
	storeGW   gateway.StoreGateway
	catalogGW gateway.CatalogGateway
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(resolver *tenanthost.Resolver, storeGW gateway.StoreGateway, catalogGW gateway.CatalogGateway) *StorefrontService {
	return &StorefrontService{
		resolver:  resolver,
		storeGW:   storeGW,
		catalogGW: catalogGW,
	}
}

// StorefrontView is the public storefront: the store plus its grouped catalog
type StorefrontView struct {
	Store   *entity.Store           `json:"store"`
	Catalog []builder.CategoryGroup `json:"catalog"`
}

// ResolveStore maps a request host to its store. The operator/base host and
// unknown slugs both surface as "store not found"; host parsing itself never
// fails.
func (s *StorefrontService) ResolveStore(ctx context.Context, host string) (*entity.Store, error) {
	slug := s.resolver.Resolve(host)
	if slug == "" {
		return nil, apperror.NewNotFoundError("Store")
	}
	store, err := s.storeGW.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// Load resolves the host and assembles the storefront view
func (s *StorefrontService) Load(ctx context.Context, host string) (*StorefrontView, error) {
	store, err := s.ResolveStore(ctx, host)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogGW.ListItems(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &StorefrontView{
		Store:   store,
		Catalog: builder.GroupCatalog(items),
	}, nil
}

// StorefrontURL builds the public URL for a slug; this backs the explicit
// "open storefront" action in the back office.
func (s *StorefrontService) StorefrontURL(slug, apexHost string) string {
	return s.resolver.StorefrontURL(slug, apexHost)
}

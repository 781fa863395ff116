package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

const (
	// StoreIDKey is the context key for the resolved store ID
	StoreIDKey ctxKey = "store_id"
)

// StoreScope returns a GORM scope that filters by the resolved store. It is
// applied to all store-scoped gateway tables so one merchant's journal never
// leaks into another's listing.
func StoreScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		storeID, ok := ctx.Value(StoreIDKey).(string)
		if !ok || storeID == "" {
			// Fail-safe: return no results if store context missing
			return db.Where("1 = 0")
		}
		return db.Where("store_id = ?", storeID)
	}
}

// WithStore adds the resolved store ID to context
func WithStore(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, StoreIDKey, storeID)
}

// GetStoreID extracts the resolved store ID from context
func GetStoreID(ctx context.Context) (string, bool) {
	storeID, ok := ctx.Value(StoreIDKey).(string)
	return storeID, ok
}

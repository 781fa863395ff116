package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/application/service"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/backend"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/response"
	infraRepo "github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/repository"
)

// TenantMiddleware resolves the store from the request's Host subdomain and
// adds it to the context. Requests whose host does not map to a known store
// are rejected.
func TenantMiddleware(storefrontService *service.StorefrontService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Relay the visitor's session cookie on outbound API calls
		if cookie := c.GetHeader("Cookie"); cookie != "" {
			c.Request = c.Request.WithContext(backend.WithSessionCookie(c.Request.Context(), cookie))
		}

		store, err := storefrontService.ResolveStore(c.Request.Context(), c.Request.Host)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Set store in Gin context (for handlers)
		c.Set("store", store)
		c.Set("store_id", store.ID)

		// Also set store ID in request context (for repositories)
		ctx := infraRepo.WithStore(c.Request.Context(), store.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetStore retrieves the resolved store from gin context
func GetStore(c *gin.Context) *entity.Store {
	storeVal, exists := c.Get("store")
	if !exists {
		return nil
	}
	store, ok := storeVal.(*entity.Store)
	if !ok {
		return nil
	}
	return store
}

// GetStoreID retrieves the store ID from gin context
func GetStoreID(c *gin.Context) string {
	storeID, exists := c.Get("store_id")
	if !exists {
		return ""
	}
	id, ok := storeID.(string)
	if !ok {
		return ""
	}
	return id
}

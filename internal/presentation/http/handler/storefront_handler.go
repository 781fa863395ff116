package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/application/service"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/response"
)

// StorefrontHandler serves the public storefront view for the store resolved
// from the request host.
type StorefrontHandler struct {
	storefrontService *service.StorefrontService
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(storefrontService *service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// Get returns the store profile and its catalog grouped by category
func (h *StorefrontHandler) Get(c *gin.Context) {
	view, err := h.storefrontService.Load(c.Request.Context(), c.Request.Host)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Storefront retrieved successfully", view)
}

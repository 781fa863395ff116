package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/application/service"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/request"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/response"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/middleware"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/utils"
)

// BuilderHandler handles order builder session requests
type BuilderHandler struct {
	builderService *service.BuilderService
	tokenManager   *utils.SessionTokenManager
}

// NewBuilderHandler creates a new builder handler
func NewBuilderHandler(builderService *service.BuilderService, tokenManager *utils.SessionTokenManager) *BuilderHandler {
	return &BuilderHandler{builderService: builderService, tokenManager: tokenManager}
}

// Open starts a builder session for the store resolved from the request host
func (h *BuilderHandler) Open(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		response.BadRequest(c, "Store context required")
		return
	}

	result := h.builderService.Open(store)

	token, err := h.tokenManager.GenerateToken(result.SessionID, result.StoreID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened successfully", gin.H{
		"session_id": result.SessionID,
		"store_id":   result.StoreID,
		"token":      token,
	})
}

// Get returns the current cart lines and totals
func (h *BuilderHandler) Get(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.builderService.Snapshot(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", view)
}

// GetCatalog returns the session's catalog grouped by category
func (h *BuilderHandler) GetCatalog(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	groups, err := h.builderService.Catalog(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog retrieved successfully", groups)
}

// RefreshCatalog re-fetches the session's catalog from the POS backend
func (h *BuilderHandler) RefreshCatalog(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.builderService.RefreshCatalog(sessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 202, "Catalog refresh started", nil)
}

// AddItem adds a catalog item to the cart as a new line
func (h *BuilderHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.builderService.AddItem(sessionID, req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added to cart", view)
}

// SelectVariant sets or clears the variant selection for a cart line
func (h *BuilderHandler) SelectVariant(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req request.SelectVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.builderService.SelectVariant(sessionID, index, req.VariantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Variant updated successfully", view)
}

// ChangeQuantity adjusts a cart line quantity by a signed delta
func (h *BuilderHandler) ChangeQuantity(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req request.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.builderService.ChangeQuantity(sessionID, index, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated successfully", view)
}

// RemoveLine removes a cart line
func (h *BuilderHandler) RemoveLine(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	view, err := h.builderService.RemoveLine(sessionID, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed successfully", view)
}

// UpdateDraft updates customer, payment, discount and tax draft fields
func (h *BuilderHandler) UpdateDraft(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.builderService.UpdateDraft(sessionID, &service.DraftInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Discount:      req.Discount,
		TaxPercent:    req.TaxPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft updated successfully", view)
}

// Submit builds the order payload and submits it to the POS backend
func (h *BuilderHandler) Submit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.builderService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order submitted successfully", result)
}

// Close discards the builder session
func (h *BuilderHandler) Close(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.builderService.Close(sessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *BuilderHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return uuid.Nil, false
	}
	return *sessionID, true
}

func (h *BuilderHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid line index")
		return 0, false
	}
	return index, true
}

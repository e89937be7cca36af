package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
)

// StockHandler handles stock provisioning and lookup. These endpoints are
// operational tooling, not part of the storefront surface.
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.PUT("", h.Provision)
		stock.GET("/:productId", h.GetStock)
	}
}

// Provision sets the available quantity for a product
func (h *StockHandler) Provision(c *gin.Context) {
	var req inventoryapp.ProvisionStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	level, err := h.stockService.Provision(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

// GetStock returns the stock level for a product
func (h *StockHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	level, err := h.stockService.GetStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

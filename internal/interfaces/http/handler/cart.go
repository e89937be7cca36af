package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles shopping cart requests
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.GetCart)
		carts.DELETE("", h.ClearCart)
		carts.POST("/items", h.AddItem)
		carts.PUT("/items/:productId", h.UpdateItem)
		carts.DELETE("/items/:productId", h.RemoveItem)
	}
}

// GetCart returns the customer's cart enriched with fresh article data
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	view, err := h.cartService.GetCart(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AddItem adds a product to the customer's cart
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// UpdateItem changes the quantity of a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.cartService.UpdateItemQuantity(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// ClearCart removes the customer's cart entirely
func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *CartHandler) productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return uuid.Nil, false
	}
	return id, true
}

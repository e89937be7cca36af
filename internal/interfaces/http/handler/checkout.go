package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CheckoutHandler handles checkout session requests
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
	sessionTTL      time.Duration
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService, sessionTTL time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessionTTL:      sessionTTL,
	}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/checkout")
	{
		sessions.POST("", h.StartCheckout)
		sessions.GET("/steps/:step/access", h.CheckStepAccess)
		sessions.POST("/expire-stale", h.ExpireStale)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/buyer-info", h.SubmitBuyerInfo)
		sessions.POST("/:id/delivery", h.SubmitDelivery)
		sessions.POST("/:id/payment", h.SubmitPayment)
		sessions.POST("/:id/confirm", h.Confirm)
		sessions.POST("/:id/abandon", h.Abandon)
	}
}

// StartCheckout starts a checkout session from the customer's cart.
// Returns the existing active session unchanged when one exists.
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	session, err := h.checkoutService.StartCheckout(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// GetSession returns a checkout session by id
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.checkoutService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// CheckStepAccess reports whether the customer may open a checkout step,
// and where to redirect them when not
func (h *CheckoutHandler) CheckStepAccess(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	step := checkout.CheckoutStep(c.Param("step"))

	access, err := h.checkoutService.CheckStepAccess(c.Request.Context(), customerID, step)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, access)
}

// SubmitBuyerInfo stores buyer contact data and advances the session
func (h *CheckoutHandler) SubmitBuyerInfo(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.SubmitBuyerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	session, err := h.checkoutService.SubmitBuyerInfo(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SubmitDelivery stores the delivery address and shipping selection
func (h *CheckoutHandler) SubmitDelivery(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.SubmitDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	session, err := h.checkoutService.SubmitDelivery(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SubmitPayment stores the payment selection
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req checkoutapp.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	session, err := h.checkoutService.SubmitPayment(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Confirm confirms the checkout after revalidating prices and stock
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.checkoutService.ConfirmCheckout(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Abandon abandons an active checkout session
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.checkoutService.AbandonCheckout(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// ExpireStale expires active sessions idle beyond the configured TTL.
// Called by the scheduler, not by storefront clients.
func (h *CheckoutHandler) ExpireStale(c *gin.Context) {
	result, err := h.checkoutService.ExpireStaleSessions(c.Request.Context(), h.sessionTTL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *CheckoutHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid session id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

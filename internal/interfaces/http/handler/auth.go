package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// AuthHandler issues customer identities and handles the login-time cart
// reconciliation between the anonymous identity and the account.
type AuthHandler struct {
	BaseHandler
	jwtService  *auth.JWTService
	cartService *cartapp.CartService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService, cartService *cartapp.CartService) *AuthHandler {
	return &AuthHandler{
		jwtService:  jwtService,
		cartService: cartService,
	}
}

// RegisterRoutes registers auth routes. The session endpoint is public;
// login requires the caller's current (anonymous) identity.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/auth")
	{
		sessions.POST("/session", h.StartSession)
	}
}

// RegisterProtectedRoutes registers auth routes that need an identity
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/auth")
	{
		sessions.POST("/login", h.Login)
	}
}

// AnonymousSessionResponse carries a freshly issued identity
type AnonymousSessionResponse struct {
	CustomerID string              `json:"customer_id"`
	Identity   *auth.IdentityToken `json:"identity"`
}

// LoginRequest binds the login form. The account customer id stands in for
// a real credential check; the strategy selects how the anonymous cart is
// reconciled with the account's cart.
type LoginRequest struct {
	AccountCustomerID uuid.UUID          `json:"account_customer_id" binding:"required"`
	Strategy          cart.MergeStrategy `json:"strategy" binding:"required"`
}

// LoginResponse carries the account identity and the merge outcome
type LoginResponse struct {
	CustomerID string                      `json:"customer_id"`
	Identity   *auth.IdentityToken         `json:"identity"`
	Cart       *cartapp.MergeCartsResponse `json:"cart"`
}

// StartSession issues an anonymous customer identity
func (h *AuthHandler) StartSession(c *gin.Context) {
	customerID := uuid.New()

	token, err := h.jwtService.GenerateToken(customerID, true)
	if err != nil {
		h.InternalError(c, "Failed to issue identity token")
		return
	}

	h.Created(c, AnonymousSessionResponse{
		CustomerID: customerID.String(),
		Identity:   token,
	})
}

// Login exchanges the anonymous identity for the account identity and
// reconciles the two carts using the requested strategy
func (h *AuthHandler) Login(c *gin.Context) {
	anonymousID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Customer identity required")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	merge, err := h.cartService.MergeCarts(c.Request.Context(), req.AccountCustomerID, cartapp.MergeCartsRequest{
		AnonymousCustomerID: anonymousID,
		Strategy:            req.Strategy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(req.AccountCustomerID, false)
	if err != nil {
		h.InternalError(c, "Failed to issue identity token")
		return
	}

	h.Success(c, LoginResponse{
		CustomerID: req.AccountCustomerID.String(),
		Identity:   token,
		Cart:       merge,
	})
}

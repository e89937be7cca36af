package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Context keys for the authenticated customer identity
const (
	ContextKeyCustomerID = "customer_id"
	ContextKeyAnonymous  = "customer_anonymous"
)

// Identity validates the bearer identity token and stores the customer
// identity in the request context. Both anonymous and signed-in customers
// carry a token; requests without one are rejected.
func Identity(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing identity token")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Identity token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid identity token")
			return
		}

		customerID, err := claims.CustomerUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid identity token")
			return
		}

		c.Set(ContextKeyCustomerID, customerID)
		c.Set(ContextKeyAnonymous, claims.Anonymous)
		c.Next()
	}
}

// GetCustomerID returns the authenticated customer id from the context
func GetCustomerID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextKeyCustomerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// IsAnonymous reports whether the authenticated customer is anonymous
func IsAnonymous(c *gin.Context) bool {
	return c.GetBool(ContextKeyAnonymous)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

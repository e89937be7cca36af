package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInvalidClaims     = errors.New("invalid token claims")
	ErrMissingCustomerID = errors.New("missing customer_id in claims")
	ErrTokenNotYetValid  = errors.New("token is not yet valid")
)

// Claims represents the storefront's customer identity claims. Anonymous
// visitors carry a generated customer id so their cart follows them until
// they sign in.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string `json:"customer_id"`
	Anonymous  bool   `json:"anonymous"`
}

// IdentityToken is a signed customer identity with its expiry
type IdentityToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // Bearer
}

// JWTService issues and validates customer identity tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.TokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateToken issues a signed identity token for a customer
func (s *JWTService) GenerateToken(customerID uuid.UUID, anonymous bool) (*IdentityToken, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomerID
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   customerID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CustomerID: customerID.String(),
		Anonymous:  anonymous,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IdentityToken{
		Token:     signed,
		ExpiresAt: now.Add(s.expiration),
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates an identity token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.CustomerID == "" {
		return nil, ErrMissingCustomerID
	}

	return claims, nil
}

// CustomerUUID parses the customer id carried by the claims
func (c *Claims) CustomerUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.CustomerID)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

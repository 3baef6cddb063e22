package scope

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the token settings.
type Config struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// Payload represents the JWT token claims. The subject is the user id.
type Payload struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// implManager implements Manager.
type implManager struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// Context key types for payload and scope.
type (
	PayloadCtxKey struct{}
	ScopeCtxKey   struct{}
)

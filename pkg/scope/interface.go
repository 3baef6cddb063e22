package scope

import "fmt"

// Manager defines the interface for JWT/scope token management.
// Implementations are safe for concurrent use.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload) (string, error)
}

// New creates a scope Manager signing and verifying HS256 tokens.
func New(cfg Config) (Manager, error) {
	if len(cfg.SecretKey) < MinSecretKeyLen {
		return nil, fmt.Errorf("%w: need at least %d characters, got %d", ErrWeakSecret, MinSecretKeyLen, len(cfg.SecretKey))
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = TokenExpirationDuration
	}
	return &implManager{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
	}, nil
}

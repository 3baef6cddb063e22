// Command tokengen mints a signed token for local testing of the SOS API.
//
//	JWT_SECRET_KEY=... TOKEN_SUBJECT=officer-1 TOKEN_ROLE=police go run ./cmd/tokengen
package main

import (
	"fmt"
	"os"
	"time"

	"sos-srv/internal/model"
	"sos-srv/pkg/scope"

	"github.com/caarlos0/env/v9"
	"github.com/golang-jwt/jwt/v5"
)

type tokenConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY,required"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"sos-srv"`
	Subject   string        `env:"TOKEN_SUBJECT,required"`
	Role      string        `env:"TOKEN_ROLE" envDefault:"user"`
	Name      string        `env:"TOKEN_NAME"`
	Email     string        `env:"TOKEN_EMAIL"`
	TTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

func main() {
	cfg := tokenConfig{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	tok, err := mint(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func mint(cfg tokenConfig) (string, error) {
	switch cfg.Role {
	case model.RoleUser, model.RolePolice, model.RoleAdmin:
	default:
		return "", fmt.Errorf("unknown role %q", cfg.Role)
	}

	mgr, err := scope.New(scope.Config{
		SecretKey: cfg.SecretKey,
		Issuer:    cfg.Issuer,
		TTL:       cfg.TTL,
	})
	if err != nil {
		return "", err
	}

	return mgr.CreateToken(scope.Payload{
		RegisteredClaims: jwt.RegisteredClaims{Subject: cfg.Subject},
		Name:             cfg.Name,
		Email:            cfg.Email,
		Role:             cfg.Role,
	})
}

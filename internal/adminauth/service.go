// Package adminauth exchanges the shared admin password for a signed session
// token. The panel has exactly one credential and no user table.
package adminauth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/auth"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
)

// SessionDTO is the issued admin session.
type SessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginInput is the admin login payload.
type LoginInput struct {
	Password string `json:"password" validate:"required"`
}

// Service authenticates the admin panel.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionDTO, error)
}

type service struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
	now   func() time.Time
}

// NewService constructs the admin auth service.
func NewService(admin config.AdminConfig, jwtCfg config.JWTConfig) (Service, error) {
	if admin.Password == "" {
		return nil, fmt.Errorf("admin password not configured")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	return &service{admin: admin, jwt: jwtCfg, now: time.Now}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*SessionDTO, error) {
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.admin.Password)) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := auth.MintAdminToken(s.jwt, now)
	if err != nil {
		return nil, fmt.Errorf("minting admin token: %w", err)
	}
	return &SessionDTO{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
	}, nil
}

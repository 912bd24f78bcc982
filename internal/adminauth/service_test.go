package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/auth"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "ingenio-test", ExpirationMinutes: 60}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService(config.AdminConfig{Password: "verde123"}, testJWT())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), LoginInput{Password: "verde123"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims, err := auth.ParseAdminToken(testJWT(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.AdminRole, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	svc, err := NewService(config.AdminConfig{Password: "verde123"}, testJWT())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Password: "rojo456"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestNewServiceRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := NewService(config.AdminConfig{}, testJWT())
	assert.Error(t, err)

	_, err = NewService(config.AdminConfig{Password: "x"}, config.JWTConfig{})
	assert.Error(t, err)
}

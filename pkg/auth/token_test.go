package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "ingenio-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAdminToken(cfg, time.Now())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a compact JWT, got %q", token)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != AdminRole {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti to be assigned")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAdminToken(cfg, time.Now())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "other-secret"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestMintAdminTokenRequiresConfig(t *testing.T) {
	if _, err := MintAdminToken(config.JWTConfig{}, time.Now()); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bemart-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	phone := "0901234567"
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "linh@example.com",
		Name:   "Linh Nguyen",
		Phone:  &phone,
		Role:   enums.UserRoleCustomer,
	}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch: %s != %s", claims.UserID, payload.UserID)
	}
	if claims.Email != payload.Email || claims.Name != payload.Name {
		t.Fatalf("contact fields not carried: %+v", claims)
	}
	if claims.Phone == nil || *claims.Phone != phone {
		t.Fatalf("phone not carried: %v", claims.Phone)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestMintAccessTokenRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Role: "admin"}); err == nil {
		t.Fatal("expected error for invalid role")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: enums.UserRoleCustomer}); err == nil {
		t.Fatal("expected error for missing user id")
	}

	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleCustomer}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	payload := AccessTokenPayload{UserID: uuid.New(), Email: "a@b.c", Name: "A", Role: enums.UserRoleCustomer}

	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	mintCfg := testJWTConfig()
	signed, err := MintAccessToken(mintCfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(), Email: "a@b.c", Name: "A", Role: enums.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parseCfg := mintCfg
	parseCfg.Issuer = "someone-else"
	if _, err := ParseAccessToken(parseCfg, signed); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}

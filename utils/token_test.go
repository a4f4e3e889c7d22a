package utils

import "testing"

func TestJwtRoundTrip(t *testing.T) {
	token, err := JwtGenerate(7, "mahall-1", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token should be valid")
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.ID != 7 {
		t.Errorf("user id: expected 7, got %d", claims.ID)
	}
	if claims.TenantId != "mahall-1" {
		t.Errorf("tenant: expected mahall-1, got %q", claims.TenantId)
	}
	if claims.Role != "admin" {
		t.Errorf("role: expected admin, got %q", claims.Role)
	}
}

func TestJwtValidateRejectsTamperedToken(t *testing.T) {
	token, err := JwtGenerate(7, "mahall-1", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := JwtValidate(token + "x"); err == nil {
		t.Fatal("tampered signature should not validate")
	}
}

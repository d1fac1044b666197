package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42, false, 3)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.IsAdmin || claims.PositionLevel != 3 {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateToken(1, true, 5)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with another secret validated")
	}
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken(1, false, 1); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
	if _, err := ValidateToken("anything"); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}

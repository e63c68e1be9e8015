package token

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	ResetSecretForTests()
	t.Setenv(secretEnvVariable, "unit-test-secret")

	signed, err := Generate("acct_42", "Vendor", 30*time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := ParseAndValidate(signed)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "acct_42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != "vendor" {
		t.Fatalf("role was not normalized: %s", claims.Role)
	}
	if claims.Issuer != issuer {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestGenerateRequiresAccountID(t *testing.T) {
	ResetSecretForTests()
	t.Setenv(secretEnvVariable, "unit-test-secret")

	if _, err := Generate("  ", "user", time.Minute); err == nil {
		t.Fatal("expected error for blank account ID")
	}
	if _, err := Generate("acct_1", "user", 0); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}

func TestGenerateWithoutSecret(t *testing.T) {
	ResetSecretForTests()
	t.Setenv(secretEnvVariable, "")

	if _, err := Generate("acct_1", "user", time.Minute); err == nil {
		t.Fatal("expected error when secret is missing")
	}
	ResetSecretForTests()
}

func TestParseRejectsTamperedToken(t *testing.T) {
	ResetSecretForTests()
	t.Setenv(secretEnvVariable, "unit-test-secret")

	signed, err := Generate("acct_7", "user", time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := ParseAndValidate(signed + "x"); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
	if _, err := ParseAndValidate(""); err == nil {
		t.Fatal("expected empty token to fail validation")
	}
}

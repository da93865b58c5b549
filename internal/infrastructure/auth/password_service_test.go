package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("securepassword")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "securepassword" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %s", hash)
	}

	if !svc.Verify(hash, "securepassword") {
		t.Error("expected the correct password to verify")
	}
	if svc.Verify(hash, "wrongpassword") {
		t.Error("expected a wrong password to fail")
	}
	if svc.Verify("not-a-hash", "securepassword") {
		t.Error("expected an invalid hash to fail")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("securepassword")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := svc.Hash("securepassword")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

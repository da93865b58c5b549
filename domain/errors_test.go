package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCooldownError_MatchesSentinel(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		remaining int64
	}{
		{name: "zero seconds remaining", err: &CooldownError{RemainingSeconds: 0}, remaining: 0},
		{name: "partial window remaining", err: &CooldownError{RemainingSeconds: 42}, remaining: 42},
		{name: "full window remaining", err: &CooldownError{RemainingSeconds: 60}, remaining: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrOTPCooldown) {
				t.Error("CooldownError should match ErrOTPCooldown")
			}

			var ce *CooldownError
			if !errors.As(tt.err, &ce) {
				t.Fatal("expected errors.As to extract CooldownError")
			}
			if ce.RemainingSeconds != tt.remaining {
				t.Errorf("expected %d remaining seconds, got %d", tt.remaining, ce.RemainingSeconds)
			}
		})
	}
}

func TestCooldownError_MatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("resend failed: %w", &CooldownError{RemainingSeconds: 17})

	if !errors.Is(wrapped, ErrOTPCooldown) {
		t.Error("wrapped CooldownError should still match ErrOTPCooldown")
	}

	var ce *CooldownError
	if !errors.As(wrapped, &ce) {
		t.Fatal("expected errors.As to unwrap CooldownError")
	}
	if ce.RemainingSeconds != 17 {
		t.Errorf("expected 17 remaining seconds, got %d", ce.RemainingSeconds)
	}
}

func TestVerificationPendingError_MatchesSentinel(t *testing.T) {
	err := &VerificationPendingError{PendingToken: "tok_123"}

	if !errors.Is(err, ErrUserNotVerified) {
		t.Error("VerificationPendingError should match ErrUserNotVerified")
	}
	if err.Error() != ErrUserNotVerified.Error() {
		t.Errorf("message should not leak the pending token, got %q", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "bare validation error", err: &ValidationError{Field: "title", Reason: "must not be empty"}, expected: true},
		{name: "wrapped validation error", err: fmt.Errorf("create task: %w", &ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}), expected: true},
		{name: "unrelated sentinel", err: ErrTaskNotFound, expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.expected {
				t.Errorf("IsValidation() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestOTPErrors_AreDistinct(t *testing.T) {
	// The three user-facing categories must never alias each other.
	if errors.Is(ErrOTPInvalidOrExpired, ErrOTPTooManyAttempts) {
		t.Error("invalid-or-expired must not match too-many-attempts")
	}
	if errors.Is(ErrOTPTooManyAttempts, ErrOTPCooldown) {
		t.Error("too-many-attempts must not match cooldown")
	}
	if errors.Is(ErrNoPendingVerification, ErrOTPInvalidOrExpired) {
		t.Error("no-pending-verification must not match invalid-or-expired")
	}
}

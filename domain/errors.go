package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotVerified    = errors.New("email address not verified")
	ErrAlreadyVerified    = errors.New("email address already verified")
)

// OTP errors. Absent record, wrong code and expired code all collapse into
// ErrOTPInvalidOrExpired so a caller can never probe which one it was.
var (
	ErrOTPInvalidOrExpired   = errors.New("the code is invalid or expired")
	ErrOTPTooManyAttempts    = errors.New("too many attempts, please request a new code")
	ErrOTPCooldown           = errors.New("resend cooldown is active")
	ErrNoPendingVerification = errors.New("no pending verification, please register again")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Task errors. Tasks owned by someone else report not-found, never
// forbidden.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// CooldownError reports how long a caller has to wait before the next
// resend. It matches ErrOTPCooldown under errors.Is.
type CooldownError struct {
	RemainingSeconds int64
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting another code", e.RemainingSeconds)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrOTPCooldown
}

// VerificationPendingError signals that authentication cannot complete until
// the email is verified. It carries the pending-verification token the
// client needs to submit a code. Matches ErrUserNotVerified under errors.Is.
type VerificationPendingError struct {
	PendingToken string
}

func (e *VerificationPendingError) Error() string {
	return ErrUserNotVerified.Error()
}

func (e *VerificationPendingError) Is(target error) bool {
	return target == ErrUserNotVerified
}

// ValidationError reports malformed input. It is surfaced directly to the
// caller and never treated as a system fault.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

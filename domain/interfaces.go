package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// Activate idempotently flips the user's verified flag.
	Activate(ctx context.Context, userID uint) error
}

// OTPRepository persists the single pending code per user. Upsert overwrites
// any existing record for the same user in one statement.
type OTPRepository interface {
	Upsert(ctx context.Context, otp *EmailOTP) error
	FindByUserID(ctx context.Context, userID uint) (*EmailOTP, error)
	SaveAttempts(ctx context.Context, userID uint, attempts int) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// TaskRepository defines task data access. Every operation is scoped by the
// owning user id.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByIDForUser(ctx context.Context, userID, taskID uint) (*Task, error)
	ListByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]Task, error)
	Update(ctx context.Context, task *Task) error
}

// AuthService defines authentication business logic
type AuthService interface {
	// Register creates an inactive user, issues an OTP, dispatches the
	// verification email and returns the pending-verification token.
	Register(ctx context.Context, username, email, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// VerifyEmail resolves the pending token, validates the code and
	// activates the account.
	VerifyEmail(ctx context.Context, pendingToken, code string) error
	ResendOTP(ctx context.Context, pendingToken string) error
	// ResendRemaining reports how many seconds are left before the next
	// resend is allowed, 0 when resend-eligible.
	ResendRemaining(ctx context.Context, pendingToken string) (int64, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService owns the per-user code lifecycle. Issue and Resend return the
// freshly generated code; dispatching it by mail is the caller's job and
// happens after the record is committed.
type OTPService interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Resend(ctx context.Context, userID uint) (string, error)
	Verify(ctx context.Context, userID uint, code string) error
	ResendRemaining(ctx context.Context, userID uint) (int64, error)
}

// TaskService defines task business logic
type TaskService interface {
	ListForDay(ctx context.Context, userID uint, date string) ([]Task, error)
	Create(ctx context.Context, userID uint, title, date string) (*Task, error)
	Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*Task, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// MailService delivers the verification code to an address. It may fail and
// the failure must reach the caller.
type MailService interface {
	SendOTPEmail(to, code string) error
}

// CodeGenerator produces numeric one-time codes from a cryptographically
// secure random source.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

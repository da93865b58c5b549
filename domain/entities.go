package domain

import "time"

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

// User represents an account in the system. Users are created inactive and
// become active only after their email address is verified.
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string `gorm:"column:password"`
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmailOTP is the single pending verification code for a user. At most one
// record exists per user; issuing a new code overwrites the old one.
type EmailOTP struct {
	UserID     uint
	Code       string
	CreatedAt  time.Time
	LastSentAt *time.Time
	Attempts   int
}

// Task belongs to exactly one user and one calendar day. Ownership is fixed
// at creation.
type Task struct {
	ID          uint
	UserID      uint
	Title       string
	Date        time.Time
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries the optional fields of a partial task update. A nil
// field is left untouched.
type TaskPatch struct {
	Title       *string
	IsCompleted *bool
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session. The same shape backs both login
// sessions and pending email verification state; the repositories differ
// only by key prefix and TTL.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

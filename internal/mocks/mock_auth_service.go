package mocks

import (
	"context"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, username, email, password string) (*domain.User, string, error)
	LoginFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	VerifyEmailFunc     func(ctx context.Context, pendingToken, code string) error
	ResendOTPFunc       func(ctx context.Context, pendingToken string) error
	ResendRemainingFunc func(ctx context.Context, pendingToken string) (int64, error)
	RefreshTokenFunc    func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sessionID string) error
	GetUserProfileFunc  func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	// Default behavior: return a mock inactive user awaiting verification
	return &domain.User{
		ID:        1,
		Username:  username,
		Email:     email,
		IsActive:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, "mock_pending_token", nil
}

// Login authenticates a user and returns auth result
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: return successful auth result
	return &domain.AuthResult{
		User: &domain.User{
			ID:       1,
			Email:    email,
			IsActive: true,
		},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    900,
	}, nil
}

// VerifyEmail validates the code for the pending registration
func (m *MockAuthService) VerifyEmail(ctx context.Context, pendingToken, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, pendingToken, code)
	}
	// Default behavior: success
	return nil
}

// ResendOTP re-sends the verification code
func (m *MockAuthService) ResendOTP(ctx context.Context, pendingToken string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, pendingToken)
	}
	// Default behavior: success
	return nil
}

// ResendRemaining reports the resend cooldown left in seconds
func (m *MockAuthService) ResendRemaining(ctx context.Context, pendingToken string) (int64, error) {
	if m.ResendRemainingFunc != nil {
		return m.ResendRemainingFunc(ctx, pendingToken)
	}
	// Default behavior: resend allowed now
	return 0, nil
}

// RefreshToken refreshes authentication tokens
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{
		AccessToken:  "mock_new_access_token",
		RefreshToken: "mock_new_refresh_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    900,
	}, nil
}

// Logout invalidates the session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// GetUserProfile returns the user's profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{
		ID:       userID,
		Username: "mockuser",
		Email:    "mock@example.com",
		IsActive: true,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

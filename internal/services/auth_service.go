package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 8

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	pendingRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	mailSvc     domain.MailService
	sessionTTL  time.Duration
	pendingTTL  time.Duration
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	pendingRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	mailSvc domain.MailService,
	sessionTTL, pendingTTL, accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		pendingRepo: pendingRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		mailSvc:     mailSvc,
		sessionTTL:  sessionTTL,
		pendingTTL:  pendingTTL,
		accessTTL:   accessTTL,
	}
}

// Register implements domain.AuthService. The user is created inactive; a
// code is issued and mailed; the returned token identifies the pending
// verification. A mail dispatch failure propagates, but the inactive user
// and its code record are kept so a later resend can recover.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, "", &domain.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if email == "" {
		return nil, "", &domain.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if len(password) < MinPasswordLength {
		return nil, "", &domain.ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", domain.ErrEmailTaken
	}
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, "", domain.ErrUsernameTaken
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	code, err := s.otpSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue verification code: %w", err)
	}

	if err := s.mailSvc.SendOTPEmail(user.Email, code); err != nil {
		return nil, "", fmt.Errorf("failed to send verification email: %w", err)
	}

	token, err := s.beginPendingVerification(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login implements domain.AuthService. Unknown email and wrong password are
// indistinguishable to the caller. An unverified account yields a
// VerificationPendingError carrying a fresh pending token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Field: "credentials", Reason: "email and password are required"}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		token, err := s.beginPendingVerification(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.VerificationPendingError{PendingToken: token}
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, pendingToken, code string) error {
	pending, err := s.resolvePending(ctx, pendingToken)
	if err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return &domain.ValidationError{Field: "otp", Reason: "code is required"}
	}

	if err := s.otpSvc.Verify(ctx, pending.UserID, code); err != nil {
		return err
	}

	// Verification succeeded; the pending state has served its purpose.
	_ = s.pendingRepo.Delete(ctx, pendingToken)
	return nil
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, pendingToken string) error {
	pending, err := s.resolvePending(ctx, pendingToken)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, pending.UserID)
	if err != nil {
		return domain.ErrNoPendingVerification
	}
	if user.IsActive {
		return domain.ErrAlreadyVerified
	}

	code, err := s.otpSvc.Resend(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.mailSvc.SendOTPEmail(user.Email, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// ResendRemaining implements domain.AuthService
func (s *AuthServiceImpl) ResendRemaining(ctx context.Context, pendingToken string) (int64, error) {
	pending, err := s.resolvePending(ctx, pendingToken)
	if err != nil {
		return 0, err
	}
	return s.otpSvc.ResendRemaining(ctx, pending.UserID)
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) beginPendingVerification(ctx context.Context, userID uint) (string, error) {
	pending := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.pendingTTL),
		CreatedAt: time.Now(),
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return "", fmt.Errorf("failed to create pending verification: %w", err)
	}
	return pending.ID, nil
}

func (s *AuthServiceImpl) resolvePending(ctx context.Context, pendingToken string) (*domain.Session, error) {
	if strings.TrimSpace(pendingToken) == "" {
		return nil, domain.ErrNoPendingVerification
	}
	pending, err := s.pendingRepo.FindByID(ctx, pendingToken)
	if err != nil {
		return nil, domain.ErrNoPendingVerification
	}
	return pending, nil
}

package mocks

import (
	"sync"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: reversible marker, good enough for wiring tests
	return "hashed:" + password, nil
}

// Verify verifies a password against its hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, sessionID)
	}
	return "access-token", nil
}

// GenerateRefreshToken generates a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, sessionID)
	}
	return "refresh-token", nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// SentMail records a single dispatched verification email.
type SentMail struct {
	To   string
	Code string
}

// MockMailService implements domain.MailService interface for testing. It
// records every send so tests can assert on dispatched codes.
type MockMailService struct {
	SendOTPEmailFunc func(to, code string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailService creates a new MockMailService with default behaviors
func NewMockMailService() *MockMailService {
	return &MockMailService{}
}

// SendOTPEmail records the outgoing mail
func (m *MockMailService) SendOTPEmail(to, code string) error {
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(to, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Code: code})
	return nil
}

// Sent returns a copy of all recorded mails.
func (m *MockMailService) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// MockCodeGenerator implements domain.CodeGenerator interface for testing.
// Codes is consumed in order; when exhausted the last code repeats.
type MockCodeGenerator struct {
	GenerateFunc func(length int) (string, error)
	Codes        []string

	mu   sync.Mutex
	next int
}

// NewMockCodeGenerator creates a generator that yields the given codes in order
func NewMockCodeGenerator(codes ...string) *MockCodeGenerator {
	return &MockCodeGenerator{Codes: codes}
}

// Generate returns the next scripted code
func (m *MockCodeGenerator) Generate(length int) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(length)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Codes) == 0 {
		return "000000", nil
	}
	code := m.Codes[m.next]
	if m.next < len(m.Codes)-1 {
		m.next++
	}
	return code, nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService = (*MockPasswordService)(nil)
	_ domain.TokenService    = (*MockTokenService)(nil)
	_ domain.MailService     = (*MockMailService)(nil)
	_ domain.CodeGenerator   = (*MockCodeGenerator)(nil)
)

package mocks

import (
	"context"
	"sync"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing.
// By default it keeps records in an in-memory map so service tests can
// exercise the full issue/verify lifecycle without a database.
type MockOTPRepository struct {
	UpsertFunc         func(ctx context.Context, otp *domain.EmailOTP) error
	FindByUserIDFunc   func(ctx context.Context, userID uint) (*domain.EmailOTP, error)
	SaveAttemptsFunc   func(ctx context.Context, userID uint, attempts int) error
	DeleteByUserIDFunc func(ctx context.Context, userID uint) error

	mu      sync.Mutex
	records map[uint]domain.EmailOTP
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{records: make(map[uint]domain.EmailOTP)}
}

// Upsert stores or replaces the record for the user
func (m *MockOTPRepository) Upsert(ctx context.Context, otp *domain.EmailOTP) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, otp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[otp.UserID] = *otp
	return nil
}

// FindByUserID returns the stored record for the user
func (m *MockOTPRepository) FindByUserID(ctx context.Context, userID uint) (*domain.EmailOTP, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrOTPInvalidOrExpired
	}
	return &rec, nil
}

// SaveAttempts persists the attempt counter for the user's record
func (m *MockOTPRepository) SaveAttempts(ctx context.Context, userID uint, attempts int) error {
	if m.SaveAttemptsFunc != nil {
		return m.SaveAttemptsFunc(ctx, userID, attempts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return domain.ErrOTPInvalidOrExpired
	}
	rec.Attempts = attempts
	m.records[userID] = rec
	return nil
}

// DeleteByUserID removes the record for the user
func (m *MockOTPRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}

// Stored returns a copy of the record currently held for the user, if any.
func (m *MockOTPRepository) Stored(userID uint) (domain.EmailOTP, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	return rec, ok
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)

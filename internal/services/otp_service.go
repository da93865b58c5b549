package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// OTPConfig carries the verification knobs.
type OTPConfig struct {
	Length         int
	TTL            time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
}

// OTPServiceImpl implements domain.OTPService. All operations for the same
// user run under a per-user lock: two concurrent verifies must not both read
// the attempts counter before either increments it. Operations for
// different users never contend.
type OTPServiceImpl struct {
	otpRepo  domain.OTPRepository
	userRepo domain.UserRepository
	codeGen  domain.CodeGenerator
	config   OTPConfig
	now      func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewOTPService creates a new OTP service. A nil now falls back to
// time.Now.
func NewOTPService(otpRepo domain.OTPRepository, userRepo domain.UserRepository, codeGen domain.CodeGenerator, config OTPConfig, now func() time.Time) domain.OTPService {
	if now == nil {
		now = time.Now
	}
	return &OTPServiceImpl{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		codeGen:  codeGen,
		config:   config,
		now:      now,
		locks:    make(map[uint]*sync.Mutex),
	}
}

func (s *OTPServiceImpl) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Issue implements domain.OTPService. Any existing record for the user is
// overwritten: fresh code, attempts back to zero, both timestamps reset.
func (s *OTPServiceImpl) Issue(ctx context.Context, userID uint) (string, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.issueLocked(ctx, userID)
}

func (s *OTPServiceImpl) issueLocked(ctx context.Context, userID uint) (string, error) {
	code, err := s.codeGen.Generate(s.config.Length)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	now := s.now()
	record := &domain.EmailOTP{
		UserID:     userID,
		Code:       code,
		CreatedAt:  now,
		LastSentAt: &now,
		Attempts:   0,
	}
	if err := s.otpRepo.Upsert(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// Resend implements domain.OTPService. Outside the cooldown window it
// behaves exactly like Issue; inside it fails with the remaining wait.
func (s *OTPServiceImpl) Resend(ctx context.Context, userID uint) (string, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.otpRepo.FindByUserID(ctx, userID)
	switch {
	case err == domain.ErrOTPInvalidOrExpired:
		// No record yet; treat as a first send.
	case err != nil:
		return "", fmt.Errorf("failed to load code record: %w", err)
	default:
		if remaining := s.remaining(record); remaining > 0 {
			return "", &domain.CooldownError{RemainingSeconds: remaining}
		}
	}

	return s.issueLocked(ctx, userID)
}

// Verify implements domain.OTPService. The checks short-circuit in a fixed
// order: absence, expiry, attempt exhaustion, then the code itself. Expired
// and exhausted records are evicted on first encounter and never increment
// further.
func (s *OTPServiceImpl) Verify(ctx context.Context, userID uint, code string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.otpRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == domain.ErrOTPInvalidOrExpired {
			return err
		}
		return fmt.Errorf("failed to load code record: %w", err)
	}

	now := s.now()
	if now.After(record.CreatedAt.Add(s.config.TTL)) {
		if err := s.otpRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("failed to evict expired code: %w", err)
		}
		return domain.ErrOTPInvalidOrExpired
	}

	if record.Attempts >= s.config.MaxAttempts {
		if err := s.otpRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("failed to evict exhausted code: %w", err)
		}
		return domain.ErrOTPTooManyAttempts
	}

	if code != record.Code {
		if err := s.otpRepo.SaveAttempts(ctx, userID, record.Attempts+1); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}
		return domain.ErrOTPInvalidOrExpired
	}

	// Activate before evicting the record: if activation fails the code is
	// still usable for a retry, and re-activation is idempotent.
	if err := s.userRepo.Activate(ctx, userID); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if err := s.otpRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to evict used code: %w", err)
	}
	return nil
}

// ResendRemaining implements domain.OTPService. 0 means resend-eligible.
func (s *OTPServiceImpl) ResendRemaining(ctx context.Context, userID uint) (int64, error) {
	record, err := s.otpRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == domain.ErrOTPInvalidOrExpired {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load code record: %w", err)
	}
	return s.remaining(record), nil
}

// remaining reports the seconds left in the cooldown window, rounded up,
// clamped to zero.
func (s *OTPServiceImpl) remaining(record *domain.EmailOTP) int64 {
	if record.LastSentAt == nil {
		return 0
	}
	return ceilSeconds(record.LastSentAt.Add(s.config.ResendCooldown).Sub(s.now()))
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

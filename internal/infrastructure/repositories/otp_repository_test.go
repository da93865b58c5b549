package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

func TestOTPRepositoryImpl_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.Upsert(ctx, &domain.EmailOTP{
		UserID:     1,
		Code:       "111111",
		CreatedAt:  first,
		LastSentAt: &first,
		Attempts:   3,
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A second upsert for the same user replaces the row instead of adding
	// one.
	second := first.Add(2 * time.Minute)
	if err := repo.Upsert(ctx, &domain.EmailOTP{
		UserID:     1,
		Code:       "222222",
		CreatedAt:  second,
		LastSentAt: &second,
		Attempts:   0,
	}); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	var count int64
	if err := db.Model(&DBEmailOTP{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row per user, got %d", count)
	}

	rec, err := repo.FindByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if rec.Code != "222222" {
		t.Errorf("expected replaced code 222222, got %s", rec.Code)
	}
	if rec.Attempts != 0 {
		t.Errorf("expected attempts reset to 0, got %d", rec.Attempts)
	}
	if !rec.CreatedAt.Equal(second) {
		t.Errorf("expected CreatedAt %v, got %v", second, rec.CreatedAt)
	}
}

func TestOTPRepositoryImpl_FindByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)

	if _, err := repo.FindByUserID(context.Background(), 42); err != domain.ErrOTPInvalidOrExpired {
		t.Errorf("expected invalid-or-expired for a missing record, got %v", err)
	}
}

func TestOTPRepositoryImpl_SaveAttempts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Upsert(ctx, &domain.EmailOTP{UserID: 1, Code: "111111", CreatedAt: now, LastSentAt: &now}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := repo.SaveAttempts(ctx, 1, 4); err != nil {
		t.Fatalf("SaveAttempts failed: %v", err)
	}
	rec, err := repo.FindByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if rec.Attempts != 4 {
		t.Errorf("expected attempts 4, got %d", rec.Attempts)
	}
	if rec.Code != "111111" {
		t.Errorf("the code must be untouched, got %s", rec.Code)
	}
}

func TestOTPRepositoryImpl_DeleteByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Upsert(ctx, &domain.EmailOTP{UserID: 1, Code: "111111", CreatedAt: now, LastSentAt: &now}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := repo.DeleteByUserID(ctx, 1); err != nil {
		t.Fatalf("DeleteByUserID failed: %v", err)
	}
	if _, err := repo.FindByUserID(ctx, 1); err != domain.ErrOTPInvalidOrExpired {
		t.Errorf("expected the record to be gone, got %v", err)
	}

	// Deleting an absent record is not an error.
	if err := repo.DeleteByUserID(ctx, 1); err != nil {
		t.Errorf("expected deleting an absent record to succeed, got %v", err)
	}
}

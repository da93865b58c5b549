package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM. The unique
// index on user_id plus ON CONFLICT upsert enforce the one-record-per-user
// invariant at the database level.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBEmailOTP represents the database model for EmailOTP
type DBEmailOTP struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	Code       string `gorm:"size:10;not null"`
	CreatedAt  time.Time
	LastSentAt *time.Time
	Attempts   int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DBEmailOTP) TableName() string {
	return "email_otps"
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Upsert implements domain.OTPRepository. An existing record for the same
// user is overwritten in a single statement; there is no get-or-create race.
func (r *OTPRepositoryImpl) Upsert(ctx context.Context, otp *domain.EmailOTP) error {
	row := &DBEmailOTP{
		UserID:     otp.UserID,
		Code:       otp.Code,
		CreatedAt:  otp.CreatedAt,
		LastSentAt: otp.LastSentAt,
		Attempts:   otp.Attempts,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at", "last_sent_at", "attempts"}),
	}).Create(row).Error
}

// FindByUserID implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.EmailOTP, error) {
	var row DBEmailOTP
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return nil, err
	}
	return &domain.EmailOTP{
		UserID:     row.UserID,
		Code:       row.Code,
		CreatedAt:  row.CreatedAt,
		LastSentAt: row.LastSentAt,
		Attempts:   row.Attempts,
	}, nil
}

// SaveAttempts implements domain.OTPRepository
func (r *OTPRepositoryImpl) SaveAttempts(ctx context.Context, userID uint, attempts int) error {
	return r.db.WithContext(ctx).Model(&DBEmailOTP{}).
		Where("user_id = ?", userID).
		Update("attempts", attempts).Error
}

// DeleteByUserID implements domain.OTPRepository. Deleting an absent record
// is not an error.
func (r *OTPRepositoryImpl) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBEmailOTP{}).Error
}

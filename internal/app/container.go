package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/config"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/infrastructure/auth"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/infrastructure/database"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/infrastructure/notifications"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/infrastructure/repositories"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/logger"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    *zap.SugaredLogger

	// Infrastructure
	DB          *gorm.DB
	Redis       *database.RedisClient
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	TaskRepo    domain.TaskRepository
	SessionRepo domain.SessionRepository
	PendingRepo domain.SessionRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	MailSvc     domain.MailService
	CodeGen     domain.CodeGenerator
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	TaskSvc     domain.TaskService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	c.Log = log

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initRedis()
	c.initRepositories()
	c.initServices()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	c.RedisClient = c.Redis.Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.TaskRepo = repositories.NewTaskRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	// Pending verifications outlive a single code so a user can resend
	// after expiry without registering again.
	c.PendingRepo = repositories.NewPendingVerificationRepository(c.RedisClient, 3*c.Config.OTPTTL)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.CodeGen = auth.NewCodeGenerator(nil)
	c.MailSvc = notifications.NewMailService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
		c.Config.OTPTTL,
		c.Log,
	)

	otpConfig := services.OTPConfig{
		Length:         c.Config.OTPLength,
		TTL:            c.Config.OTPTTL,
		ResendCooldown: c.Config.OTPResendCooldown,
		MaxAttempts:    c.Config.OTPMaxAttempts,
	}
	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.UserRepo, c.CodeGen, otpConfig, nil)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PendingRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.MailSvc,
		c.Config.RefreshTTL,
		3*c.Config.OTPTTL,
		c.Config.AccessTTL,
	)

	c.TaskSvc = services.NewTaskService(c.TaskRepo)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

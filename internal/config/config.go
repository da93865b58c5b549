package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	Length         int    `yaml:"length"`
	TTL            string `yaml:"ttl"`
	ResendCooldown string `yaml:"resend_cooldown"`
	MaxAttempts    int    `yaml:"max_attempts"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	OTPLength         int
	OTPTTL            time.Duration
	OTPResendCooldown time.Duration
	OTPMaxAttempts    int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Defaults for the verification knobs. A missing config file is not fatal;
// everything can come from the environment.
const (
	DefaultOTPLength         = 6
	DefaultOTPTTL            = 600 * time.Second
	DefaultOTPResendCooldown = 60 * time.Second
	DefaultOTPMaxAttempts    = 5
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

// envDuration accepts either a bare number of seconds or a Go duration
// string ("10m").
func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

func parseDuration(fileVal string, def time.Duration) (time.Duration, error) {
	if fileVal == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(fileVal); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(fileVal)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q in config file", fileVal)
	}
	return d, nil
}

// Load reads config/config.yml when present, then lets environment
// variables override each field.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (*Config, error) {
	var file ConfigFile
	if bytes, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bytes, &file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml at %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if file.App.Port == 0 {
		file.App.Port = 8080
	}
	if file.OTP.Length == 0 {
		file.OTP.Length = DefaultOTPLength
	}
	if file.OTP.MaxAttempts == 0 {
		file.OTP.MaxAttempts = DefaultOTPMaxAttempts
	}
	if file.SMTP.Port == 0 {
		file.SMTP.Port = 587
	}

	accessTTL, err := parseDuration(file.JWT.AccessTTL, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refreshTTL, err := parseDuration(file.JWT.RefreshTTL, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	otpTTL, err := parseDuration(file.OTP.TTL, DefaultOTPTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	cooldown, err := parseDuration(file.OTP.ResendCooldown, DefaultOTPResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend cooldown: %w", err)
	}

	cfg := &Config{
		Port:          env("APP_PORT", strconv.Itoa(file.App.Port)),
		GinMode:       env("GIN_MODE", orDefault(file.App.GinMode, "release")),
		LogLevel:      env("LOG_LEVEL", orDefault(file.App.LogLevel, "info")),
		DSN:           env("DATABASE_DSN", file.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", orDefault(file.Redis.Addr, "localhost:6379")),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		JWTSecret:     env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:     env("JWT_ISSUER", orDefault(file.JWT.Issuer, "calendarsnow")),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		SMTPHost:      env("SMTP_HOST", file.SMTP.Host),
		SMTPUsername:  env("SMTP_USERNAME", file.SMTP.Username),
		SMTPPassword:  env("SMTP_PASSWORD", file.SMTP.Password),
		SMTPFrom:      env("SMTP_FROM", file.SMTP.From),
	}

	if cfg.RedisDB, err = envInt("REDIS_DB", file.Redis.DB); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = envInt("SMTP_PORT", file.SMTP.Port); err != nil {
		return nil, err
	}
	if cfg.OTPLength, err = envInt("EMAIL_OTP_LENGTH", file.OTP.Length); err != nil {
		return nil, err
	}
	if cfg.OTPMaxAttempts, err = envInt("EMAIL_OTP_MAX_ATTEMPTS", file.OTP.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = envDuration("EMAIL_OTP_TTL_SECONDS", otpTTL); err != nil {
		return nil, err
	}
	if cfg.OTPResendCooldown, err = envDuration("EMAIL_OTP_RESEND_COOLDOWN", cooldown); err != nil {
		return nil, err
	}

	if cfg.OTPLength <= 0 {
		return nil, fmt.Errorf("otp length must be positive, got %d", cfg.OTPLength)
	}
	if cfg.OTPMaxAttempts <= 0 {
		return nil, fmt.Errorf("otp max attempts must be positive, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.OTPTTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive, got %s", cfg.OTPTTL)
	}
	if cfg.OTPResendCooldown <= 0 {
		return nil, fmt.Errorf("otp resend cooldown must be positive, got %s", cfg.OTPResendCooldown)
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

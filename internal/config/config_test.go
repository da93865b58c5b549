package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadFrom with missing file should use defaults, got error: %v", err)
	}

	if cfg.OTPLength != 6 {
		t.Errorf("expected default OTP length 6, got %d", cfg.OTPLength)
	}
	if cfg.OTPTTL != 600*time.Second {
		t.Errorf("expected default OTP TTL 600s, got %s", cfg.OTPTTL)
	}
	if cfg.OTPResendCooldown != 60*time.Second {
		t.Errorf("expected default resend cooldown 60s, got %s", cfg.OTPResendCooldown)
	}
	if cfg.OTPMaxAttempts != 5 {
		t.Errorf("expected default max attempts 5, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
}

func TestLoadFrom_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
app:
  port: 9090
  log_level: debug
otp:
  length: 8
  ttl: 300
  resend_cooldown: 30s
  max_attempts: 3
smtp:
  host: smtp.example.com
  from: noreply@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.OTPLength != 8 {
		t.Errorf("expected OTP length 8, got %d", cfg.OTPLength)
	}
	if cfg.OTPTTL != 300*time.Second {
		t.Errorf("expected OTP TTL 300s, got %s", cfg.OTPTTL)
	}
	if cfg.OTPResendCooldown != 30*time.Second {
		t.Errorf("expected resend cooldown 30s, got %s", cfg.OTPResendCooldown)
	}
	if cfg.OTPMaxAttempts != 3 {
		t.Errorf("expected max attempts 3, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.SMTPHost != "smtp.example.com" {
		t.Errorf("expected smtp host from file, got %s", cfg.SMTPHost)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("otp:\n  ttl: 300\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("EMAIL_OTP_TTL_SECONDS", "120")
	t.Setenv("EMAIL_OTP_RESEND_COOLDOWN", "45s")
	t.Setenv("EMAIL_OTP_LENGTH", "4")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.OTPTTL != 120*time.Second {
		t.Errorf("env should override file TTL, got %s", cfg.OTPTTL)
	}
	if cfg.OTPResendCooldown != 45*time.Second {
		t.Errorf("env duration string should parse, got %s", cfg.OTPResendCooldown)
	}
	if cfg.OTPLength != 4 {
		t.Errorf("env should override OTP length, got %d", cfg.OTPLength)
	}
}

func TestLoadFrom_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "zero length", env: map[string]string{"EMAIL_OTP_LENGTH": "0"}},
		{name: "negative length", env: map[string]string{"EMAIL_OTP_LENGTH": "-3"}},
		{name: "garbage ttl", env: map[string]string{"EMAIL_OTP_TTL_SECONDS": "soon"}},
		{name: "zero max attempts", env: map[string]string{"EMAIL_OTP_MAX_ATTEMPTS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
				t.Error("expected an error for invalid configuration")
			}
		})
	}
}

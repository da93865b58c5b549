package notifications

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// MailServiceImpl implements domain.MailService over SMTP.
type MailServiceImpl struct {
	dialer *gomail.Dialer
	from   string
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// NewMailService creates an SMTP-backed mail service. With an empty host the
// service logs messages instead of sending them, so local development works
// without an SMTP server.
func NewMailService(host string, port int, username, password, from string, otpTTL time.Duration, log *zap.SugaredLogger) domain.MailService {
	var dialer *gomail.Dialer
	if host != "" {
		dialer = gomail.NewDialer(host, port, username, password)
	}
	return &MailServiceImpl{
		dialer: dialer,
		from:   from,
		ttl:    otpTTL,
		log:    log,
	}
}

// SendOTPEmail implements domain.MailService
func (s *MailServiceImpl) SendOTPEmail(to, code string) error {
	ttlMinutes := int(s.ttl.Minutes())

	body := fmt.Sprintf(
		"Use this code to verify your email address:\n\n"+
			"%s\n\n"+
			"This code expires in %d minutes.\n"+
			"If you didn't request this, you can ignore this message.",
		code, ttlMinutes,
	)

	if s.dialer == nil {
		s.log.Infow("smtp not configured, logging verification email instead",
			"to", to, "code", code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

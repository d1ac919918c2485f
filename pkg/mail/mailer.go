package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/RomanSiu/contacts-api/config"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
)

// Mailer sends email-confirmation messages over plain SMTP. When disabled
// (the default outside production) it logs the confirmation link instead of
// sending, which keeps local signups usable without a mail server.
type Mailer struct {
	cfg     config.MailConfig
	baseURL string
}

func NewMailer(cfg config.MailConfig, baseURL string) *Mailer {
	return &Mailer{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SendConfirmation delivers the confirmation link for the given token.
func (m *Mailer) SendConfirmation(_ context.Context, to, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/confirm/%s", m.baseURL, token)

	if !m.cfg.Enabled {
		logger.GetLogger().Info("Mail disabled, confirmation link logged instead",
			zap.String("to", to),
			zap.String("link", link),
		)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: Confirm your email",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Welcome! Please confirm your email by opening the link below.",
		"",
		link,
		"",
		"The link is valid for 7 days.",
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}

	logger.GetLogger().Info("Confirmation email sent",
		zap.String("to", to),
	)

	return nil
}

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"
)

// EmailChannel delivers transactional email over SMTP. Without configured
// credentials it degrades to logging a simulated delivery and succeeding,
// so local environments run the full pipeline without a mail server.
type EmailChannel struct {
	host   string
	port   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger

	// send is swapped in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailChannel creates the email channel. Empty host enables the
// degraded logging mode.
func NewEmailChannel(host, port, from, username, password string, logger *slog.Logger) *EmailChannel {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &EmailChannel{
		host:   host,
		port:   port,
		from:   from,
		auth:   auth,
		logger: logger.With("component", "notify.email"),
		send:   smtp.SendMail,
	}
}

// Name identifies the channel.
func (c *EmailChannel) Name() notification.Channel {
	return notification.ChannelEmail
}

// Send delivers one message. SMTP failures are marked transient: the
// usual causes are connectivity and greylisting, both worth a retry.
func (c *EmailChannel) Send(_ context.Context, target Target, payload Payload) (SendResult, error) {
	if target.Email == "" || !strings.Contains(target.Email, "@") {
		return SendResult{}, errs.NewValueIsInvalidError("email address")
	}

	if c.host == "" {
		c.logger.Info("simulated email delivery",
			"to", target.Email,
			"subject", payload.Title,
		)
		return SendResult{}, nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		c.from, target.Email, payload.Title, payload.Body,
	))

	addr := c.host + ":" + c.port
	if err := c.send(addr, c.auth, c.from, []string{target.Email}, msg); err != nil {
		return SendResult{}, MarkTransient(fmt.Errorf("smtp send to %s: %w", target.Email, err))
	}

	return SendResult{}, nil
}

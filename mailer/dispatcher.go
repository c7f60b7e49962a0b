package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"redhour/internal/errs"
)

// Sender delivers messages over one SMTP session.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type Dispatcher struct {
	sender Sender
}

// NewDispatcher connects with mandatory STARTTLS and PLAIN authentication.
func NewDispatcher(cfg SMTPConfig) (*Dispatcher, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := mail.NewClient(
		host,
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Dispatcher{sender: client}, nil
}

func NewDispatcherWithSender(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Send opens a session, delivers msg and closes the session on every path.
func (d *Dispatcher) Send(ctx context.Context, msg *mail.Msg) error {
	if msg == nil {
		return &errs.SendError{Err: errors.New("nil message")}
	}
	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return &errs.SendError{Err: err}
	}
	return nil
}

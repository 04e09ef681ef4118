package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/soft-m/softm-api/internal/jobs"
)

// Message is a plain-text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer relays through an unauthenticated SMTP server such as Mailpit.
type SMTPMailer struct {
	Addr string
	From string
	send SendFunc
}

// NewSMTPMailer builds a mailer for host:port.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{
		Addr: net.JoinHostPort(host, strconv.Itoa(port)),
		From: from,
		send: smtp.SendMail,
	}
}

// Send writes msg to the relay. ctx is only checked before dialing;
// net/smtp has no cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(msg.To, "\r\n") || strings.ContainsAny(msg.Subject, "\r\n") {
		return errors.New("mail: header contains line break")
	}
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(m.Addr, nil, m.From, []string{msg.To}, m.render(msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) render(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// SendEmailJob handles TaskTypeSendEmail.
type SendEmailJob struct {
	Mailer  Mailer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// Handle decodes the payload and delivers the mail. Malformed payloads are
// not retried.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Mailer == nil {
		return errors.New("send email: handler not configured")
	}
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("send email: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.To == "" {
		return fmt.Errorf("send email: empty recipient: %w", asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskTypeSendEmail)
	err := j.Mailer.Send(ctx, Message{To: payload.To, Subject: payload.Subject, Body: payload.Body})
	if err != nil {
		j.logger().Error("send email", slog.String("to", payload.To), slog.Any("error", err))
		return tracker.End(err)
	}
	j.Metrics.MailSent(payload.Template)
	j.logger().Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return tracker.End(nil)
}

func (j *SendEmailJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

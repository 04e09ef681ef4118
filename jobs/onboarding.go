package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/soft-m/softm-api/internal/jobs"
)

// WelcomeTemplate labels the mail sent to a new client contact.
const WelcomeTemplate = "client_welcome"

// NextOnboardingStep is what a DRAFT client has to do after creation.
const NextOnboardingStep = "configure treasury"

// MailEnqueuer queues outgoing mail.
type MailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// ClientOnboardingJob follows up on created clients.
type ClientOnboardingJob struct {
	Mail    MailEnqueuer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewClientOnboardingJob wires dependencies for the onboarding handler.
func NewClientOnboardingJob(mail MailEnqueuer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ClientOnboardingJob {
	return &ClientOnboardingJob{Mail: mail, Logger: logger, Metrics: metrics}
}

// Handle processes TaskClientOnboarding tasks.
func (j *ClientOnboardingJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Mail == nil {
		return errors.New("client onboarding: handler not configured")
	}
	var payload ClientOnboardingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("client onboarding: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.ClientID == "" {
		return fmt.Errorf("client onboarding: missing client id: %w", asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskClientOnboarding)
	logger := j.logger().With(slog.String("client_id", payload.ClientID), slog.String("client_type", payload.ClientType))
	logger.Info("client awaiting onboarding", slog.String("next_step", NextOnboardingStep))

	if payload.Email == "" {
		logger.Warn("client has no contact email, skipping welcome mail")
		return tracker.End(nil)
	}
	if _, err := j.Mail.EnqueueSendEmail(ctx, WelcomeMail(payload)); err != nil {
		logger.Error("enqueue welcome mail", slog.Any("error", err))
		return tracker.End(fmt.Errorf("client onboarding: enqueue welcome mail: %w", err))
	}
	return tracker.End(nil)
}

func (j *ClientOnboardingJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// WelcomeMail renders the welcome message for a new client.
func WelcomeMail(p ClientOnboardingPayload) SendEmailPayload {
	var body strings.Builder
	fmt.Fprintf(&body, "Bonjour,\n\n")
	fmt.Fprintf(&body, "Le compte %s (SIRET %s) a été créé sur SOFT-M.\n", p.Name, p.SIRET)
	fmt.Fprintf(&body, "Prochaine étape : configurer la trésorerie et le système comptable.\n\n")
	fmt.Fprintf(&body, "Référence client : %s\n\n", p.ClientID)
	fmt.Fprintf(&body, "L'équipe SOFT-M\n")
	return SendEmailPayload{
		To:       p.Email,
		Subject:  "Bienvenue sur SOFT-M - " + p.Name,
		Body:     body.String(),
		Template: WelcomeTemplate,
	}
}

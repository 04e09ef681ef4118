package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskClientOnboarding follows up on a newly created client.
	TaskClientOnboarding = "clients:onboarding"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Template string `json:"template,omitempty"`
}

// ClientOnboardingPayload carries the created client to the worker.
type ClientOnboardingPayload struct {
	ClientID   string    `json:"clientId"`
	ClientType string    `json:"clientType"`
	Name       string    `json:"name"`
	SIRET      string    `json:"siret"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewClientOnboardingTask constructs the follow-up task for a new client.
func NewClientOnboardingTask(payload ClientOnboardingPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskClientOnboarding, data), nil
}

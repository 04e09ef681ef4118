package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreatedEvent is published after a client is persisted.
type CreatedEvent struct {
	ClientID   string     `json:"clientId"`
	ClientType ClientType `json:"clientType"`
	Name       string     `json:"name"`
	SIRET      string     `json:"siret"`
	Email      string     `json:"email"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewCreatedEvent describes c for publication.
func NewCreatedEvent(c Client) CreatedEvent {
	return CreatedEvent{
		ClientID:   c.ID,
		ClientType: c.ClientType,
		Name:       c.Name,
		SIRET:      c.SIRET,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
	}
}

// EventPublisher forwards domain events to background processing.
type EventPublisher interface {
	PublishClientCreated(ctx context.Context, evt CreatedEvent) error
}

// Recorder counts create outcomes.
type Recorder interface {
	ClientCreated(clientType string)
	ClientRejected(reason string)
}

// ServiceConfig carries optional collaborators.
type ServiceConfig struct {
	Logger  *slog.Logger
	Cache   *Cache
	Events  EventPublisher
	Metrics Recorder

	// NewID overrides id generation; defaults to random UUIDs.
	NewID func() string
}

// Service implements client onboarding operations.
type Service struct {
	repo     Repository
	validate *validator.Validate
	cache    *Cache
	events   EventPublisher
	metrics  Recorder
	logger   *slog.Logger
	newID    func() string
}

// NewService constructs a Service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return &Service{
		repo:     repo,
		validate: newValidator(),
		cache:    cfg.Cache,
		events:   cfg.Events,
		metrics:  cfg.Metrics,
		logger:   logger,
		newID:    newID,
	}
}

// Create validates req, enforces SIRET uniqueness and stores a DRAFT client.
// Only the id and name are returned.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (ClientSummary, error) {
	if err := validateCreate(s.validate, req); err != nil {
		s.rejected("validation")
		return ClientSummary{}, err
	}

	// Fast path; the unique constraint below is authoritative.
	if _, err := s.repo.FindBySIRET(ctx, req.SIRET); err == nil {
		s.rejected("duplicate_siret")
		return ClientSummary{}, ErrSIRETExists
	} else if !errors.Is(err, ErrNotFound) {
		return ClientSummary{}, fmt.Errorf("clients: lookup siret: %w", err)
	}

	created, err := s.repo.Create(ctx, req.toClient(s.newID()))
	if err != nil {
		if errors.Is(err, ErrDuplicateSIRET) {
			s.rejected("duplicate_siret")
			return ClientSummary{}, ErrSIRETExists
		}
		return ClientSummary{}, fmt.Errorf("clients: create: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ClientCreated(string(created.ClientType))
	}
	s.publishCreated(ctx, created)

	return ClientSummary{ID: created.ID, Name: created.Name}, nil
}

// Get returns a client by id, reading through the cache.
func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Client{}, invalidID(id)
	}
	canonical := parsed.String()
	client, err := s.cache.FetchClient(ctx, canonical, func(ctx context.Context) (Client, error) {
		return s.repo.Get(ctx, canonical)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Client{}, notFound(id)
		}
		return Client{}, fmt.Errorf("clients: get %s: %w", id, err)
	}
	return client, nil
}

func (s *Service) publishCreated(ctx context.Context, c Client) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishClientCreated(ctx, NewCreatedEvent(c)); err != nil {
		s.logger.Warn("publish client created", slog.String("client_id", c.ID), slog.Any("error", err))
	}
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.ClientRejected(reason)
	}
}

package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-m/softm-api/internal/platform/httpx"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	mu      sync.Mutex
	byID    map[string]Client
	bySIRET map[string]string

	findCalls   int
	createCalls int
	getCalls    int
	lastGetID   string

	// hideSIRET makes FindBySIRET miss so Create hits the constraint.
	hideSIRET bool

	// Error injection
	findErr   error
	createErr error
	getErr    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:    make(map[string]Client),
		bySIRET: make(map[string]string),
	}
}

func (m *mockRepository) FindBySIRET(ctx context.Context, siret string) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.findErr != nil {
		return Client{}, m.findErr
	}
	id, ok := m.bySIRET[siret]
	if !ok || m.hideSIRET {
		return Client{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	m.lastGetID = id
	if m.getErr != nil {
		return Client{}, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) Create(ctx context.Context, c Client) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return Client{}, m.createErr
	}
	if _, exists := m.bySIRET[c.SIRET]; exists {
		return Client{}, ErrDuplicateSIRET
	}
	c.CreatedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	c.UpdatedAt = c.CreatedAt
	m.byID[c.ID] = c
	m.bySIRET[c.SIRET] = c.ID
	return c, nil
}

func (m *mockRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type recordingPublisher struct {
	events []CreatedEvent
	err    error
}

func (p *recordingPublisher) PublishClientCreated(ctx context.Context, evt CreatedEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

type recordingMetrics struct {
	created  []string
	rejected []string
}

func (m *recordingMetrics) ClientCreated(clientType string) { m.created = append(m.created, clientType) }
func (m *recordingMetrics) ClientRejected(reason string)    { m.rejected = append(m.rejected, reason) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func newTestService(repo Repository, cfg ServiceConfig) *Service {
	if cfg.NewID == nil {
		cfg.NewID = sequentialIDs()
	}
	return NewService(repo, cfg)
}

// ============================================================================
// CREATE
// ============================================================================

func TestServiceCreateStoresDraftClient(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, ServiceConfig{})

	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", summary.ID)
	assert.Equal(t, "Mairie de Saint-Cloud", summary.Name)

	stored := repo.byID[summary.ID]
	assert.Equal(t, StatusDraft, stored.Status)
	assert.Equal(t, "contact@mairie-saint-cloud.fr", stored.Email)
	assert.Equal(t, "21920063500014", stored.SIRET)
	assert.Equal(t, ClientTypeMairie, stored.ClientType)
	assert.Empty(t, stored.AccountingSystem)
}

func TestServiceCreateIgnoresSuppliedStatus(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, ServiceConfig{})

	req := validRequest()
	req.Status = []byte(`"ACTIVE"`)
	summary, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, repo.byID[summary.ID].Status)
}

func TestServiceCreateKeepsOptionalFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, ServiceConfig{})

	req := validRequest()
	req.AccountingSystem = AccountingJVS
	req.CollectivityCode = "COLL92210"
	req.BudgetCode = "BUD2024"
	summary, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	stored := repo.byID[summary.ID]
	assert.Equal(t, AccountingJVS, stored.AccountingSystem)
	assert.Equal(t, "COLL92210", stored.CollectivityCode)
	assert.Equal(t, "BUD2024", stored.BudgetCode)
}

func TestServiceCreateRejectsDuplicateSIRET(t *testing.T) {
	repo := newMockRepository()
	metrics := &recordingMetrics{}
	svc := newTestService(repo, ServiceConfig{Metrics: metrics})

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		req := validRequest()
		req.Name = "Another name"
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, httpx.ErrConflict))
		assert.Equal(t, MsgSIRETExists, err.Error())
		assert.Equal(t, http.StatusConflict, httpx.BodyFor(err).StatusCode)
	}

	assert.Equal(t, 1, repo.count())
	assert.Equal(t, 1, repo.createCalls, "duplicate must be caught before insert")
	assert.Equal(t, []string{"duplicate_siret", "duplicate_siret"}, metrics.rejected)
}

func TestServiceCreateMapsConstraintRaceToConflict(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, ServiceConfig{})

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	repo.hideSIRET = true
	_, err = svc.Create(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSIRETExists)
	assert.Equal(t, 1, repo.count())
}

func TestServiceCreateValidationTouchesNoStorage(t *testing.T) {
	repo := newMockRepository()
	metrics := &recordingMetrics{}
	events := &recordingPublisher{}
	svc := newTestService(repo, ServiceConfig{Metrics: metrics, Events: events})

	req := validRequest()
	req.SIRET = "123"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("siret"))
	assert.Zero(t, repo.findCalls)
	assert.Zero(t, repo.createCalls)
	assert.Empty(t, events.events)
	assert.Equal(t, []string{"validation"}, metrics.rejected)
}

func TestServiceCreateSurfacesStorageFailure(t *testing.T) {
	repo := newMockRepository()
	repo.findErr = errors.New("connection refused")
	svc := newTestService(repo, ServiceConfig{})

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	body := httpx.BodyFor(err)
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
	assert.Equal(t, httpx.InternalMessage, body.Message)
	assert.Zero(t, repo.createCalls)

	repo.findErr = nil
	repo.createErr = errors.New("disk full")
	_, err = svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, httpx.BodyFor(err).StatusCode)
	assert.Zero(t, repo.count())
}

func TestServiceCreatePublishesEventAndCounts(t *testing.T) {
	repo := newMockRepository()
	metrics := &recordingMetrics{}
	events := &recordingPublisher{}
	svc := newTestService(repo, ServiceConfig{Metrics: metrics, Events: events})

	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	evt := events.events[0]
	assert.Equal(t, summary.ID, evt.ClientID)
	assert.Equal(t, ClientTypeMairie, evt.ClientType)
	assert.Equal(t, "contact@mairie-saint-cloud.fr", evt.Email)
	assert.False(t, evt.CreatedAt.IsZero())
	assert.Equal(t, []string{"MAIRIE"}, metrics.created)
}

func TestServiceCreateToleratesPublisherFailure(t *testing.T) {
	repo := newMockRepository()
	events := &recordingPublisher{err: errors.New("redis down")}
	svc := newTestService(repo, ServiceConfig{Events: events})

	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 1, repo.count())
}

func TestServiceCreateDefaultsToUUIDs(t *testing.T) {
	svc := NewService(newMockRepository(), ServiceConfig{})
	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, summary.ID)
}

// ============================================================================
// GET
// ============================================================================

func TestServiceGet(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, ServiceConfig{})
	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		client, err := svc.Get(context.Background(), summary.ID)
		require.NoError(t, err)
		assert.Equal(t, summary.Name, client.Name)
		assert.Equal(t, StatusDraft, client.Status)
	})

	t.Run("malformed id", func(t *testing.T) {
		calls := repo.getCalls
		_, err := svc.Get(context.Background(), "not-a-uuid")
		require.Error(t, err)
		body := httpx.BodyFor(err)
		assert.Equal(t, http.StatusBadRequest, body.StatusCode)
		assert.Equal(t, "Validation failed (uuid expected): not-a-uuid", body.Message)
		assert.Equal(t, calls, repo.getCalls)
	})

	t.Run("unknown id", func(t *testing.T) {
		id := "6f1c2b7e-9d4a-4c1e-8f3b-2a5d7e9c1b40"
		_, err := svc.Get(context.Background(), id)
		require.ErrorIs(t, err, ErrNotFound)
		body := httpx.BodyFor(err)
		assert.Equal(t, http.StatusNotFound, body.StatusCode)
		assert.Equal(t, "Client "+id+" not found", body.Message)
	})

	t.Run("non-canonical id forms", func(t *testing.T) {
		for _, form := range []string{
			"urn:uuid:" + summary.ID,
			"{" + summary.ID + "}",
			strings.ToUpper(summary.ID),
		} {
			client, err := svc.Get(context.Background(), form)
			require.NoError(t, err, form)
			assert.Equal(t, summary.ID, client.ID, form)
		}
		assert.Equal(t, summary.ID, repo.lastGetID)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo.getErr = errors.New("timeout")
		defer func() { repo.getErr = nil }()
		_, err := svc.Get(context.Background(), summary.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, httpx.BodyFor(err).StatusCode)
	})
}

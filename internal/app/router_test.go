package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/soft-m/softm-api/internal/apidocs"
	"github.com/soft-m/softm-api/internal/clients"
	"github.com/soft-m/softm-api/internal/observability"
	"github.com/soft-m/softm-api/jobs"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]clients.Client
}

func (m *memoryRepo) FindBySIRET(ctx context.Context, siret string) (clients.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.SIRET == siret {
			return c, nil
		}
	}
	return clients.Client{}, clients.ErrNotFound
}

func (m *memoryRepo) Get(ctx context.Context, id string) (clients.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (m *memoryRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = c
	return c, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type RouterSuite struct {
	suite.Suite
	router  http.Handler
	pinger  *stubPinger
	metrics *observability.Metrics
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = observability.NewMetrics()
	s.pinger = &stubPinger{}

	service := clients.NewService(&memoryRepo{rows: map[string]clients.Client{}}, clients.ServiceConfig{
		Logger:  logger,
		Metrics: s.metrics,
	})
	doc := apidocs.Build(apidocs.Config{Info: apidocs.Info{Title: "SOFT-M API", Version: "1.0"}}, clients.Operations())
	docs, err := apidocs.NewHandler(doc, DocsPrefix+"/openapi.json")
	s.Require().NoError(err)

	s.router = NewRouter(RouterParams{
		Logger:         logger,
		Config:         &Config{AppRequestTimeout: 0, RateLimitPerMinute: 1000, CORSOrigins: []string{"http://localhost:5173"}},
		DB:             s.pinger,
		ClientsHandler: clients.NewHandler(logger, service),
		DocsHandler:    docs,
		JobsHandler:    jobs.NewHandler(nil, logger),
		Metrics:        s.metrics,
	})
}

func (s *RouterSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:41234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

const createBody = `{"clientType":"MAIRIE","siret":"21920063500014","name":"Mairie de Saint-Cloud",
"address":"Place Charles de Gaulle","postalCode":"92210","city":"Saint-Cloud",
"email":"Contact@Mairie-Saint-Cloud.FR ","phone":"+33146021234"}`

func (s *RouterSuite) TestCreateUnderAPIPrefix() {
	rr := s.do(http.MethodPost, APIPrefix+"/clients", createBody, map[string]string{"Content-Type": "application/json"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var summary clients.ClientSummary
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &summary))
	s.Equal("Mairie de Saint-Cloud", summary.Name)

	rr = s.do(http.MethodPost, APIPrefix+"/clients", createBody, nil)
	s.Equal(http.StatusConflict, rr.Code)

	rr = s.do(http.MethodGet, APIPrefix+"/clients/"+summary.ID, "", nil)
	s.Equal(http.StatusOK, rr.Code)

	metrics := s.do(http.MethodGet, "/metrics", "", nil).Body.String()
	s.Contains(metrics, `softm_clients_created_total{client_type="MAIRIE"} 1`)
	s.Contains(metrics, `softm_clients_rejected_total{reason="duplicate_siret"} 1`)
	s.Contains(metrics, `softm_http_requests_total{code="201",route="/api/v1/clients"} 1`)
}

func (s *RouterSuite) TestUnknownRouteUsesErrorBody() {
	rr := s.do(http.MethodGet, "/nope", "", nil)
	s.Equal(http.StatusNotFound, rr.Code)
	s.JSONEq(`{"statusCode":404,"message":"Cannot GET /nope"}`, rr.Body.String())

	rr = s.do(http.MethodDelete, APIPrefix+"/clients", "", nil)
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
	s.Contains(rr.Body.String(), `"statusCode":405`)
}

func (s *RouterSuite) TestHealthz() {
	rr := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())

	s.pinger.err = errors.New("connection refused")
	rr = s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	s.Contains(rr.Body.String(), "Database unavailable")
}

func (s *RouterSuite) TestSecurityHeadersAndRequestID() {
	rr := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal("nosniff", rr.Header().Get("X-Content-Type-Options"))
	s.Equal("DENY", rr.Header().Get("X-Frame-Options"))
	s.Contains(rr.Header().Get("Content-Security-Policy"), "https://unpkg.com")
}

func (s *RouterSuite) TestCORSPreflight() {
	rr := s.do(http.MethodOptions, APIPrefix+"/clients", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})
	s.Equal("http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rr.Header().Get("Access-Control-Allow-Credentials"))

	rr = s.do(http.MethodOptions, APIPrefix+"/clients", "", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	s.Empty(rr.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestDocsMounted() {
	rr := s.do(http.MethodGet, DocsPrefix+"/openapi.json", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var doc map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &doc))
	s.Contains(doc["paths"], "/clients")

	rr = s.do(http.MethodGet, DocsPrefix, "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "swagger-ui")
}

func (s *RouterSuite) TestJobsHealthMounted() {
	rr := s.do(http.MethodGet, APIPrefix+"/jobs/health", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `"queue":"default"`)
}

func (s *RouterSuite) TestPanicsBecomeJSON500() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := http.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	stack := MiddlewareStack(MiddlewareConfig{Logger: logger})
	for i := len(stack) - 1; i >= 0; i-- {
		r = stack[i](r)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.11:1234"
	r.ServeHTTP(rr, req)
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.JSONEq(`{"statusCode":500,"message":"Internal server error"}`, rr.Body.String())
}

func (s *RouterSuite) TestAPIDocumentMergesPlanned() {
	doc := APIDocument()
	s.Equal(APIPrefix, doc.Servers[0].URL)

	create := (*doc.Paths["/clients"])["post"]
	s.Require().NotNil(create)
	s.Nil(create.Implemented)

	list := (*doc.Paths["/clients"])["get"]
	s.Require().NotNil(list)
	s.Require().NotNil(list.Implemented)
	s.False(*list.Implemented)
}

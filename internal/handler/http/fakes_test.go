package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/require"
)

// ---- Fakes: services ----

type fakeAuthService struct {
	authenticateFn func(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	lastRequest    models.AuthRequest
}

func (f *fakeAuthService) Authenticate(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error) {
	f.lastRequest = request
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, request)
	}
	return models.AuthResponse{Result: models.OK("authenticated"), Authorized: true, Token: "tok"}, nil
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn != nil {
		return f.parseTokenFn(ctx, tokenString)
	}
	if tokenString != "valid" {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{TerminalID: "T-01"}, nil
}

type fakeChangeFeedService struct {
	batch       models.ChangeBatch
	err         error
	lastRequest models.ChangeRequest
}

func (f *fakeChangeFeedService) GetChanges(_ context.Context, request models.ChangeRequest) (models.ChangeBatch, error) {
	f.lastRequest = request
	return f.batch, f.err
}

type fakeIngestService struct {
	response    models.PushResponse
	err         error
	calls       int
	lastRequest models.PushRequest
}

func (f *fakeIngestService) Ingest(_ context.Context, request models.PushRequest) (models.PushResponse, error) {
	f.calls++
	f.lastRequest = request
	return f.response, f.err
}

type fakeHeartbeatService struct {
	err         error
	lastRequest models.HeartbeatRequest
}

func (f *fakeHeartbeatService) Beat(_ context.Context, request models.HeartbeatRequest) (models.HeartbeatResponse, error) {
	f.lastRequest = request
	if f.err != nil {
		return models.HeartbeatResponse{}, f.err
	}
	return models.HeartbeatResponse{Result: models.OK("heartbeat received")}, nil
}

type fakeAppInfoService struct {
	healthy bool
}

func (f *fakeAppInfoService) Ping(context.Context) models.PingResponse {
	return models.PingResponse{Result: models.OK("pong"), Server: "central-1", Version: "test-version", Status: models.StatusOK}
}

func (f *fakeAppInfoService) Health(context.Context) models.HealthResponse {
	if !f.healthy {
		return models.HealthResponse{Result: models.Fail(models.StatusDegraded), Database: models.DatabaseStatus{Status: models.StatusDegraded}}
	}
	return models.HealthResponse{Result: models.OK(models.StatusOK), Database: models.DatabaseStatus{Status: models.StatusOK}}
}

// ---- Helpers ----

type fakeServices struct {
	auth      *fakeAuthService
	feed      *fakeChangeFeedService
	ingest    *fakeIngestService
	heartbeat *fakeHeartbeatService
	appInfo   *fakeAppInfoService
}

func newFakeServices() *fakeServices {
	return &fakeServices{
		auth:      &fakeAuthService{},
		feed:      &fakeChangeFeedService{batch: models.ChangeBatch{Result: models.OK("0 changes")}},
		ingest:    &fakeIngestService{response: models.PushResponse{Result: models.OK("ok")}},
		heartbeat: &fakeHeartbeatService{},
		appInfo:   &fakeAppInfoService{healthy: true},
	}
}

func (f *fakeServices) handler() *Handler {
	return NewHandler(&service.Services{
		AuthService:       f.auth,
		ChangeFeedService: f.feed,
		IngestService:     f.ingest,
		HeartbeatService:  f.heartbeat,
		AppInfoService:    f.appInfo,
	}, logger.Nop())
}

// doJSON sends body as JSON through router and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}

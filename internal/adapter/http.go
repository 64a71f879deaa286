package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathPing      = "/api/sync/ping"
	pathAuth      = "/api/sync/auth"
	pathChanges   = "/api/sync/cambios"
	pathPush      = "/api/sync/recibir-cambios"
	pathHeartbeat = "/api/sync/heartbeat"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and configures
// the underlying resty client with the request timeout and retry count.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.TerminalAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout, cfg.RetryCount)
	client.
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Authenticate implements [ServerAdapter]. It POSTs the credentials to
// POST /api/sync/auth. A 401 response is decoded as well, so the caller sees
// the server's reason next to the wrapped [ErrUnauthorized].
func (h *httpServerAdapter) Authenticate(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error) {
	var response models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		Post(pathAuth)
	if err != nil {
		return response, fmt.Errorf("%w: auth request: %w", ErrTransport, err)
	}

	if mapped := mapHTTPError(resp); mapped != nil {
		if errors.Is(mapped, ErrUnauthorized) {
			_ = json.Unmarshal(resp.Body(), &response)
		}
		return response, mapped
	}

	if err = decode(resp, &response); err != nil {
		return response, err
	}
	if !response.Authorized || response.Token == "" {
		return response, fmt.Errorf("%w: %s", ErrUnauthorized, response.Message)
	}

	h.SetToken(response.Token)
	return response, nil
}

// PullChanges implements [ServerAdapter]. It POSTs the watermarks to
// POST /api/sync/cambios and decodes the change batch.
func (h *httpServerAdapter) PullChanges(ctx context.Context, request models.ChangeRequest) (models.ChangeBatch, error) {
	var batch models.ChangeBatch

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		Post(pathChanges)
	if err != nil {
		return batch, fmt.Errorf("%w: pull changes request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return batch, err
	}

	if err = decode(resp, &batch); err != nil {
		return batch, err
	}
	if !batch.Success {
		return batch, fmt.Errorf("%w: %s", ErrRejected, batch.Message)
	}

	return batch, nil
}

// PushChanges implements [ServerAdapter]. It POSTs the batch to
// POST /api/sync/recibir-cambios.
func (h *httpServerAdapter) PushChanges(ctx context.Context, request models.PushRequest) (models.PushResponse, error) {
	var response models.PushResponse

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		Post(pathPush)
	if err != nil {
		return response, fmt.Errorf("%w: push changes request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return response, err
	}

	if err = decode(resp, &response); err != nil {
		return response, err
	}
	if !response.Success || response.ErrorCount > 0 {
		return response, fmt.Errorf("%w: %s", ErrRejected, response.Message)
	}

	h.logger.Debug().
		Int("processed", response.ProcessedCount).
		Int("duplicates", response.Duplicates).
		Msg("push acknowledged")
	return response, nil
}

// Heartbeat implements [ServerAdapter]. It POSTs the counters to
// POST /api/sync/heartbeat.
func (h *httpServerAdapter) Heartbeat(ctx context.Context, request models.HeartbeatRequest) (models.HeartbeatResponse, error) {
	var response models.HeartbeatResponse

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		Post(pathHeartbeat)
	if err != nil {
		return response, fmt.Errorf("%w: heartbeat request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return response, err
	}

	return response, decode(resp, &response)
}

// Ping implements [ServerAdapter].
func (h *httpServerAdapter) Ping(ctx context.Context) (models.PingResponse, error) {
	var response models.PingResponse

	resp, err := h.client.R().SetContext(ctx).Get(pathPing)
	if err != nil {
		return response, fmt.Errorf("%w: ping request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return response, err
	}

	return response, decode(resp, &response)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, resp.Request.URL, err)
	}
	return nil
}

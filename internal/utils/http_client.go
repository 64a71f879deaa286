package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10*time.Second, 2)
//	resp, err := client.R().Get("http://10.0.0.2:8080/api/sync/ping")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with a per-request timeout and a
// bounded number of transport retries.
//
// Retries happen only for connectivity failures (the request produced no
// response) and for gateway statuses (502, 503, 504). Client errors such as
// 400 or 401 are never retried here; they are handled by the caller.
func NewHTTPClient(timeout time.Duration, retryCount int) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(isRetryableResponse)

	return &HTTPClient{Client: client}
}

func isRetryableResponse(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

package services

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/metrics"
)

// BackendClient talks to the external laundromat backend. It is stateless and
// safe for concurrent use; every proxied request goes through Do.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient builds a client from the resolved backend base URL.
func NewBackendClient(cfg *config.Config) *BackendClient {
	timeout := cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendClient{
		baseURL:    cfg.BackendBaseURL(),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RequestOpts captures inputs for a backend call.
type RequestOpts struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	Token     string
	RequestID string
}

// Response bundles the backend's HTTP response metadata.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// BaseURL exposes the resolved backend base URL.
func (b *BackendClient) BaseURL() string {
	return b.baseURL
}

// Do forwards one request to the backend and returns its response verbatim.
// There are no retries: a transport failure is the caller's 502.
func (b *BackendClient) Do(opts RequestOpts) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	target := b.baseURL + "/" + strings.TrimLeft(opts.Path, "/")
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var bodyReader io.Reader
	if len(opts.Body) > 0 {
		bodyReader = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequest(method, target, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if len(opts.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	requestID := opts.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	metrics.ObserveUpstream(method, time.Since(start))
	if err != nil {
		metrics.CountUpstreamError()
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CountUpstreamError()
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   payload,
		Header: resp.Header,
	}, nil
}

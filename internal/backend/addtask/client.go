// Package addtask implements the service.Service interface against the
// /add_task HTTP endpoint.
package addtask

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"habitask/internal/config"
	"habitask/internal/service"
)

const (
	// EndpointPath is resolved against the server origin, the way a relative
	// fetch resolves against the page origin.
	EndpointPath = "/add_task"

	// StatusPath is the server's health check.
	StatusPath = "/status"

	// ClientName identifies this client in the X-Client header.
	ClientName = "habitask"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client implements service.Service over HTTP.
type Client struct {
	http      *http.Client
	endpoint  string
	statusURL string
	log       *slog.Logger
}

// New creates a client for the server configured in cfg. When cfg.OAuth is
// set, requests go through an oauth2 transport.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, err := newHTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewWithHTTPClient(cfg.Server, httpClient)
	if err != nil {
		return nil, err
	}
	c.log = cfg.Log()
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(server string, httpClient *http.Client) (*Client, error) {
	cfg := &config.Config{Server: server}
	base, err := cfg.ServerURL()
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:      httpClient,
		endpoint:  base.ResolveReference(&url.URL{Path: EndpointPath}).String(),
		statusURL: base.ResolveReference(&url.URL{Path: StatusPath}).String(),
		log:       cfg.Log(),
	}, nil
}

// Endpoint returns the absolute /add_task URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func newHTTPClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	o := cfg.OAuth

	var httpClient *http.Client
	switch {
	case o.TokenURL != "":
		if o.ClientID == "" {
			return nil, fmt.Errorf("%w: oauth.client_id is required with oauth.token_url", service.ErrAuth)
		}
		cc := &clientcredentials.Config{
			ClientID:     o.ClientID,
			ClientSecret: o.ClientSecret,
			TokenURL:     o.TokenURL,
			Scopes:       o.Scopes,
		}
		httpClient = cc.Client(ctx)
	case o.AccessToken != "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.AccessToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	default:
		httpClient = &http.Client{}
	}

	// Zero means no deadline.
	httpClient.Timeout = cfg.Timeout
	return httpClient, nil
}

// AddTask POSTs req as JSON to /add_task. It never retries.
func (c *Client) AddTask(ctx context.Context, req service.TaskRequest) (service.TaskResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return service.TaskResult{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return service.TaskResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client", req.UserID+"-"+ClientName)

	status, raw, err := c.do(ctx, httpReq)
	if err != nil {
		return service.TaskResult{}, err
	}
	return decodeResponse(status, raw)
}

// Status asks the server whether it can reach Habitica.
func (c *Client) Status(ctx context.Context) (service.StatusResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return service.StatusResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("X-Client", ClientName)

	status, raw, err := c.do(ctx, httpReq)
	if err != nil {
		return service.StatusResult{}, err
	}
	return decodeStatus(status, raw)
}

// do sends httpReq once and returns the status and body.
func (c *Client) do(ctx context.Context, httpReq *http.Request) (int, []byte, error) {
	httpReq.Header.Set("Accept", "application/json")
	if id := service.RequestID(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	if err != nil {
		return 0, nil, err
	}

	c.log.Debug("response",
		"request_id", service.RequestID(ctx),
		"method", httpReq.Method,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(raw),
	)
	return resp.StatusCode, raw, nil
}

// readBody reads at most maxResponseBytes. A longer body is an error rather
// than a truncated document.
func readBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &service.Error{
			Kind:    service.KindNetwork,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to read response: %v", err),
			Err:     err,
		}
	}
	if len(raw) > maxResponseBytes {
		return nil, &service.Error{
			Kind:    service.KindDecode,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response too large (over %d bytes)", maxResponseBytes),
		}
	}
	return raw, nil
}

// wrapTransportError turns a failed round trip into a user-facing error.
func wrapTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &service.Error{
			Kind:    service.KindNetwork,
			Status:  status,
			Message: fmt.Sprintf("gateway token request failed: %v", retrieveErr),
			Err:     fmt.Errorf("%w: %w", service.ErrAuth, err),
		}
	}

	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &urlErr) && urlErr.Timeout():
		return &service.Error{Kind: service.KindNetwork, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &service.Error{Kind: service.KindNetwork, Message: "request cancelled", Err: err}
	}
	return &service.Error{
		Kind:    service.KindNetwork,
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

package openproject

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

var (
	opGetUserOK  = metrics.NewCounter(`openproject_api_calls_total{operation="get_user",status="ok"}`)
	opGetUserErr = metrics.NewCounter(`openproject_api_calls_total{operation="get_user",status="error"}`)
	opGetUserDur = metrics.NewHistogram(`openproject_api_duration_seconds{operation="get_user"}`)
)

// Client talks to the OpenProject REST API. Authentication is HTTP basic
// with the literal user "apikey"; the Host header can be overridden for
// deployments where the API sits behind a name-routing proxy.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey, host string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		host:    host,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

type userResponse struct {
	Name string `json:"name"`
}

// FetchUserName resolves a user href (e.g. "/api/v3/users/1") to the user's
// display name.
func (c *Client) FetchUserName(ctx context.Context, href string) (string, error) {
	start := time.Now()
	reqURL := c.baseURL + href

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth("apikey", c.apiKey)
	if c.host != "" {
		req.Host = c.host
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start).Milliseconds()
		c.logger.Error("OpenProject GetUser failed",
			logger.ExternalFieldsWithError("openproject", reqURL, "GET", 0, duration, err.Error()),
		)
		opGetUserErr.Inc()
		return "", fmt.Errorf("openproject get user: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	duration := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("OpenProject GetUser non-200",
			logger.ExternalFieldsWithError("openproject", reqURL, "GET", resp.StatusCode, duration, string(respBody)),
		)
		opGetUserErr.Inc()
		return "", fmt.Errorf("openproject get user: status %d, body: %s", resp.StatusCode, respBody)
	}

	var result userResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		opGetUserErr.Inc()
		return "", fmt.Errorf("decode user response: %w", err)
	}

	c.logger.Debug("OpenProject GetUser completed",
		logger.ExternalFields("openproject", reqURL, "GET", resp.StatusCode, duration),
	)
	opGetUserOK.Inc()
	opGetUserDur.Update(float64(duration) / 1000)

	return result.Name, nil
}

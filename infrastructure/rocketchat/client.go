package rocketchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/opbridge/op-rc-bridge/application/port"
	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

var (
	rcPostOK  = metrics.NewCounter(`rocketchat_api_calls_total{operation="post_message",status="ok"}`)
	rcPostErr = metrics.NewCounter(`rocketchat_api_calls_total{operation="post_message",status="error"}`)
	rcPostDur = metrics.NewHistogram(`rocketchat_api_duration_seconds{operation="post_message"}`)
)

// Client posts to a Rocket.Chat incoming-webhook URL.
type Client struct {
	webhookURL string
	authToken  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(webhookURL, authToken string, logger *slog.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		authToken:  authToken,
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

type postMessageRequest struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Alias     string `json:"alias,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// PostMessage sends one message. Non-200 responses come back as
// *port.PostError carrying the status and a bounded body slice, so the
// delivery policy can distinguish channel rejections from other failures.
func (c *Client) PostMessage(ctx context.Context, msg port.ChatMessage) error {
	start := time.Now()

	body := postMessageRequest{
		Channel:   msg.Channel,
		Text:      msg.Text,
		Alias:     msg.Alias,
		IconEmoji: msg.IconEmoji,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal message body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start).Milliseconds()
		c.logger.Error("RocketChat PostMessage failed",
			logger.ExternalFieldsWithError("rocketchat", c.webhookURL, "POST", 0, duration, err.Error()),
		)
		rcPostErr.Inc()
		return fmt.Errorf("rocketchat post message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	duration := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("RocketChat PostMessage non-200",
			logger.ExternalFieldsWithError("rocketchat", c.webhookURL, "POST", resp.StatusCode, duration, string(respBody)),
		)
		rcPostErr.Inc()
		return &port.PostError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("RocketChat PostMessage completed",
		logger.ExternalFields("rocketchat", c.webhookURL, "POST", resp.StatusCode, duration),
	)
	rcPostOK.Inc()
	rcPostDur.Update(float64(duration) / 1000)

	return nil
}

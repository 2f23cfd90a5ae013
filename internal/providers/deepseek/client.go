// internal/providers/deepseek/client.go
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/httpclient"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/common/metrics"
)

const providerName = "deepseek"

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is an alternate text provider, selectable via handlers.ask.provider.
type Client struct {
	cfg    Config
	client *http.Client
	logger logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: httpclient.New(cfg.Timeout),
		logger: log.With(map[string]interface{}{"provider": providerName}),
	}
}

func (c *Client) Name() string { return providerName }

// GenerateText implements providers.TextProvider.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", commonerrors.NewProviderUnconfiguredError(providerName)
	}

	reqID := uuid.New().String()
	start := time.Now()

	body := map[string]interface{}{
		"model":    c.cfg.Model,
		"messages": []map[string]interface{}{{"role": "user", "content": prompt}},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode deepseek request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build deepseek request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Info("deepseek.request", map[string]interface{}{
		"reqId":     reqID,
		"model":     c.cfg.Model,
		"bodyBytes": len(bs),
	})

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	metrics.UpstreamCallDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	c.logger.Info("deepseek.response", map[string]interface{}{
		"reqId":     reqID,
		"status":    resp.StatusCode,
		"bytes":     len(raw),
		"elapsedMs": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamCallsTotal.WithLabelValues(providerName, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return "", fmt.Errorf("deepseek error %d: %s", resp.StatusCode, string(raw))
	}
	metrics.UpstreamCallsTotal.WithLabelValues(providerName, "ok").Inc()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode deepseek response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in deepseek response")
	}
	return out.Choices[0].Message.Content, nil
}

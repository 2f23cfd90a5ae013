// internal/providers/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/httpclient"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/common/metrics"
)

const providerName = "gemini"

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the Gemini generateContent endpoint. It covers both proxy
// operations: schema-constrained JSON extraction from label photos and plain
// text completion for the alternate ask path.
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

// InlineImage is one label photo attached to the extraction request.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// GenerateJSON sends the instruction prompt plus inline images and a JSON
// response schema, returning the raw JSON text the model emitted.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, images []InlineImage, schema map[string]interface{}) ([]byte, error) {
	parts := []map[string]interface{}{{"text": prompt}}
	for _, img := range images {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, map[string]interface{}{
			"inlineData": map[string]interface{}{
				"mimeType": mime,
				"data":     base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"response_mime_type":   "application/json",
			"response_json_schema": schema,
		},
	}

	out, err := c.generateContent(ctx, body)
	if err != nil {
		return nil, err
	}

	text := out.firstText()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}
	return []byte(text), nil
}

// GenerateText implements providers.TextProvider.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]interface{}{{"text": prompt}}},
		},
	}

	out, err := c.generateContent(ctx, body)
	if err != nil {
		return "", err
	}
	return out.joinedText(), nil
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r *generateContentResponse) firstText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

func (r *generateContentResponse) joinedText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func (c *Client) generateContent(ctx context.Context, body map[string]interface{}) (*generateContentResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, commonerrors.NewProviderUnconfiguredError(providerName)
	}

	reqID := uuid.New().String()
	start := time.Now()
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("gemini.request", map[string]interface{}{
		"reqId":     reqID,
		"model":     c.cfg.Model,
		"bodyBytes": len(bs),
		"hasSchema": body["generationConfig"] != nil,
	})

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	metrics.UpstreamCallDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	c.logger.Info("gemini.response", map[string]interface{}{
		"reqId":     reqID,
		"status":    resp.StatusCode,
		"bytes":     len(raw),
		"elapsedMs": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamCallsTotal.WithLabelValues(providerName, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(raw))
	}
	metrics.UpstreamCallsTotal.WithLabelValues(providerName, "ok").Inc()

	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	return &out, nil
}

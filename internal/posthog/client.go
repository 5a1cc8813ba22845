package posthog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/angelcm/hogdash-go/internal/obs"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// AuthError: credencial rechazada por el gateway (401/403)
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

type Client struct {
	c       HTTPClient
	baseURL string
	apiKey  string
}

func NewClient(c HTTPClient, baseURL, apiKey string) *Client {
	return &Client{c: c, baseURL: baseURL, apiKey: apiKey}
}

type toolRequest struct {
	ToolName   string `json:"tool_name"`
	Parameters any    `json:"parameters,omitempty"`
}

type toolResponse struct {
	Content []string `json:"content"`
	Error   string   `json:"error,omitempty"`
}

func (c *Client) ExecuteTool(ctx context.Context, tool string, params any) ([]string, error) {
	body, err := json.Marshal(toolRequest{ToolName: tool, Parameters: params})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tools/execute", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.c.Do(req)
	if err != nil {
		obs.ToolCalls.WithLabelValues(tool, "network_error").Inc()
		return nil, err
	}
	defer resp.Body.Close()
	obs.ToolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		obs.ToolCalls.WithLabelValues(tool, "auth_error").Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &AuthError{Msg: fmt.Sprintf("authentication failed (%d): check your DATAGEN_API_KEY: %s", resp.StatusCode, string(b))}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		obs.ToolCalls.WithLabelValues(tool, "error").Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tool %s: non-2xx: %d body=%s", tool, resp.StatusCode, string(b))
	}

	var tr toolResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		obs.ToolCalls.WithLabelValues(tool, "decode_error").Inc()
		return nil, fmt.Errorf("tool %s: decode: %w", tool, err)
	}
	if tr.Error != "" {
		obs.ToolCalls.WithLabelValues(tool, "tool_error").Inc()
		return nil, fmt.Errorf("tool %s: %s", tool, tr.Error)
	}
	obs.ToolCalls.WithLabelValues(tool, "ok").Inc()
	return tr.Content, nil
}

package flowise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Settings carries the connection parameters resolved for a single call.
type Settings struct {
	Endpoint string
	ApiKey   string
}

// SettingsResolver returns the current gateway settings. It is called once
// per request so admin updates take effect without restarting the server.
type SettingsResolver func(ctx context.Context) (Settings, error)

// ErrUnauthorized is returned when the upstream rejects every auth scheme.
var ErrUnauthorized = errors.New("flowise: unauthorized")

// StatusError is returned for non-2xx upstream responses that are not auth
// failures.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("flowise: unexpected status %d: %s", e.Status, e.Body)
}

// Chatflow is one deployed flow listed by the upstream engine.
type Chatflow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Deployed bool   `json:"deployed"`
	Category string `json:"category"`
}

type Client struct {
	httpClient *http.Client
	resolve    SettingsResolver
}

func NewClient(resolver SettingsResolver) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		resolve: resolver,
	}
}

// NormalizeBaseURL guarantees a scheme and a single trailing slash so path
// joins are plain concatenation.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

type predictionRequest struct {
	Question       string         `json:"question"`
	SessionId      string         `json:"sessionId,omitempty"`
	OverrideConfig map[string]any `json:"overrideConfig,omitempty"`
}

type predictionResponse struct {
	Text string `json:"text"`
}

// GeneratePrediction sends a question to the given chatflow and returns the
// reply text. Header auth is tried first; a 401/403 answer triggers one retry
// with the key as a query parameter, which older engine versions require.
func (c *Client) GeneratePrediction(ctx context.Context, flowID, sessionID, question string) (string, error) {
	settings, err := c.resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve settings: %w", err)
	}

	base := NormalizeBaseURL(settings.Endpoint)
	if base == "" {
		return "", errors.New("flowise: no endpoint configured")
	}

	payload := predictionRequest{
		Question:       question,
		SessionId:      sessionID,
		OverrideConfig: map[string]any{"chatId": flowID},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%sapi/v1/prediction/%s", base, flowID)

	status, respBody, err := c.post(ctx, url, settings.ApiKey, body, false)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		status, respBody, err = c.post(ctx, url, settings.ApiKey, body, true)
		if err != nil {
			return "", err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return "", ErrUnauthorized
		}
	}
	if status < 200 || status >= 300 {
		return "", &StatusError{Status: status, Body: truncateBody(respBody)}
	}

	var parsed predictionResponse
	if err := json.Unmarshal(respBody, &parsed); err == nil && parsed.Text != "" {
		return parsed.Text, nil
	}
	// Some flows answer with a bare JSON string or plain text.
	var asString string
	if err := json.Unmarshal(respBody, &asString); err == nil {
		return asString, nil
	}
	return string(respBody), nil
}

func (c *Client) post(ctx context.Context, url, apiKey string, body []byte, queryAuth bool) (int, []byte, error) {
	target := url
	if queryAuth && apiKey != "" {
		target = url + "?apiKey=" + apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if !queryAuth && apiKey != "" {
		// Engine versions disagree on the header name, so send all three.
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Header.Set("x-api-key", apiKey)
		req.Header.Set("apiKey", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// ListChatflows fetches the deployed flows, probing the path prefixes and
// auth styles that different engine versions expose. The first parseable
// response wins. A response no candidate can parse yields an empty list.
func (c *Client) ListChatflows(ctx context.Context) ([]Chatflow, error) {
	settings, err := c.resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve settings: %w", err)
	}

	base := NormalizeBaseURL(settings.Endpoint)
	if base == "" {
		return nil, errors.New("flowise: no endpoint configured")
	}

	paths := []string{"api/v1/chatflows", "v1/chatflows", "api/chatflows", "chatflows"}

	var lastErr error
	for _, queryAuth := range []bool{true, false} {
		for _, path := range paths {
			flows, err := c.fetchChatflows(ctx, base+path, settings.ApiKey, queryAuth)
			if err != nil {
				lastErr = err
				continue
			}
			return flows, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []Chatflow{}, nil
}

func (c *Client) fetchChatflows(ctx context.Context, url, apiKey string, queryAuth bool) ([]Chatflow, error) {
	target := url
	if queryAuth && apiKey != "" {
		target = url + "?apiKey=" + apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if !queryAuth && apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Header.Set("x-api-key", apiKey)
		req.Header.Set("apiKey", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: truncateBody(body)}
	}

	return parseChatflows(body), nil
}

// parseChatflows accepts either a bare array or an object wrapping the array
// under one of the keys different engine versions use.
func parseChatflows(body []byte) []Chatflow {
	var flows []Chatflow
	if err := json.Unmarshal(body, &flows); err == nil {
		return flows
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return []Chatflow{}
	}
	for _, key := range []string{"data", "flows", "chatflows", "result", "results"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &flows); err == nil {
			return flows
		}
	}
	return []Chatflow{}
}

// Health probes the upstream engine. The dedicated health route is preferred;
// engines without one still answer on the root.
func (c *Client) Health(ctx context.Context) error {
	settings, err := c.resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve settings: %w", err)
	}
	return c.HealthAt(ctx, settings.Endpoint)
}

// HealthAt probes a specific endpoint, used when verifying new settings
// before they are committed.
func (c *Client) HealthAt(ctx context.Context, endpoint string) error {
	base := NormalizeBaseURL(endpoint)
	if base == "" {
		return errors.New("flowise: no endpoint configured")
	}

	if err := c.get(ctx, base+"health"); err == nil {
		return nil
	}
	return c.get(ctx, base)
}

func (c *Client) get(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return &StatusError{Status: resp.StatusCode, Body: ""}
	}
	return nil
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

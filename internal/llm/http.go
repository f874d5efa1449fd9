package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// json mirrors the compatibility config internal/convert uses for
// ConversionResponse, so request/response bodies on this boundary and
// the orchestrator's output encoding go through the same codec.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPAdapterConfig configures the one real-network Adapter this repo
// ships. There is no ecosystem HTTP client anywhere in the retrieval
// pack to ground a choice of library on, so the transport itself is
// stdlib net/http; the request/response body encoding still goes
// through jsoniter rather than encoding/json (documented in DESIGN.md).
type HTTPAdapterConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// HTTPAdapter calls a single JSON endpoint: POST {prompt, hints} and
// expects back {text}.
type HTTPAdapter struct {
	cfg    HTTPAdapterConfig
	client *http.Client
}

func NewHTTPAdapter(cfg HTTPAdapterConfig) *HTTPAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAdapter{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

type generateRequest struct {
	Prompt string            `json:"prompt"`
	Hints  map[string]string `json:"hints,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAdapter) Generate(ctx context.Context, prompt string, hints map[string]string) (string, error) {
	if a.cfg.Endpoint == "" {
		return "", ErrUnavailable{}
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt, Hints: hints})
	if err != nil {
		return "", ErrRequestFailed{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", ErrRequestFailed{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if a.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", ErrRequestFailed{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrRequestFailed{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", ErrRequestFailed{Status: resp.StatusCode}
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", ErrRequestFailed{Err: err}
	}
	return out.Text, nil
}

// Package ollama implements genai.Runtime against a local Ollama server.
//
// Availability maps onto the runtime states: an unreachable server is "no",
// a reachable server with the model already pulled is "readily", and a
// reachable server without the model is "after-download" (creating a session
// triggers the pull).
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/calahan-dev/dailyctl/internal/genai"
)

// DefaultEndpoint is the standard local Ollama address.
const DefaultEndpoint = "http://127.0.0.1:11434"

// Client is a genai.Runtime backed by the Ollama HTTP API.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a runtime client for the given endpoint.
// An empty endpoint selects DefaultEndpoint.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		// Generation and pulls can legitimately take minutes; rely on
		// the caller's context for cancellation instead of a client
		// timeout.
		http: &http.Client{},
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Availability probes the server's model list.
func (c *Client) Availability(ctx context.Context, opts genai.Options) (genai.Availability, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return genai.AvailabilityNo, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return genai.AvailabilityNo, fmt.Errorf("probing model runtime: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return genai.AvailabilityNo, fmt.Errorf("probing model runtime: unexpected status %s", resp.Status)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return genai.AvailabilityNo, fmt.Errorf("decoding model list: %w", err)
	}

	for _, m := range tags.Models {
		if m.Name == opts.Model || m.Name == opts.Model+":latest" {
			return genai.AvailabilityReadily, nil
		}
	}
	return genai.AvailabilityAfterDownload, nil
}

type pullProgress struct {
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

// Create returns a session for the configured model, pulling it first if the
// server doesn't have it. Pull progress is streamed to the progress callback
// as a 0-100 percentage.
func (c *Client) Create(ctx context.Context, opts genai.Options, progress func(pct float64)) (genai.Session, error) {
	avail, err := c.Availability(ctx, opts)
	if err != nil {
		return nil, err
	}

	if avail == genai.AvailabilityAfterDownload {
		if err := c.pull(ctx, opts.Model, progress); err != nil {
			return nil, err
		}
	}

	return &session{client: c, opts: opts}, nil
}

func (c *Client) pull(ctx context.Context, model string, progress func(pct float64)) error {
	body, _ := json.Marshal(map[string]interface{}{"name": model})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pulling model %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pulling model %s: unexpected status %s", model, resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var p pullProgress
		if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
			continue
		}
		if p.Error != "" {
			return fmt.Errorf("pulling model %s: %s", model, p.Error)
		}
		if p.Total > 0 && progress != nil {
			progress(float64(p.Completed) / float64(p.Total) * 100)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading pull stream: %w", err)
	}

	if progress != nil {
		progress(100)
	}
	return nil
}

// session implements genai.Session over /api/generate.
type session struct {
	client *Client
	opts   genai.Options
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt,omitempty"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
	// KeepAlive 0 unloads the model; used by Destroy.
	KeepAlive *int `json:"keep_alive,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (s *session) Summarize(ctx context.Context, prompt, promptContext string) (string, error) {
	system := s.opts.SharedContext
	if promptContext != "" {
		system = system + "\n\nContext:\n" + promptContext
	}

	reqBody := generateRequest{
		Model:  s.opts.Model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": s.opts.Temperature,
			"top_k":       s.opts.TopK,
		},
	}

	var out generateResponse
	if err := s.client.postJSON(ctx, "/api/generate", reqBody, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("model error: %s", out.Error)
	}
	return strings.TrimSpace(out.Response), nil
}

// Destroy asks the server to unload the model. Best-effort: the manager
// clears its handle regardless of the outcome.
func (s *session) Destroy() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zero := 0
	reqBody := generateRequest{
		Model:     s.opts.Model,
		KeepAlive: &zero,
	}
	var out generateResponse
	return s.client.postJSON(ctx, "/api/generate", reqBody, &out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling model runtime: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", genai.ErrQuota, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model runtime returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

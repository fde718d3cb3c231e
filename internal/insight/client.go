package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const fallbackSummary = "insight service is unavailable; showing records without summary"

// Client calls the external AI summarization service. It is best effort:
// callers always get a usable summary string, degrading to a fallback
// message when the service is slow or down.
type Client struct {
	apiURL  string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiURL:  config.APIURL,
		apiKey:  config.APIKey,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Summarize asks the insight service for a short summary of domain records.
// The error return reports what went wrong for logging; the string return is
// always usable.
func (c *Client) Summarize(ctx context.Context, domain, text string) (string, error) {
	if c.apiURL == "" {
		return fallbackSummary, nil
	}

	payload := map[string]string{
		"domain": domain,
		"text":   text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fallbackSummary, fmt.Errorf("failed to marshal insight request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/summarize", bytes.NewBuffer(jsonData))
	if err != nil {
		return fallbackSummary, fmt.Errorf("failed to create insight request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("insight request failed", "error", err, "domain", domain)
		return fallbackSummary, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("insight service returned error", "status", resp.StatusCode, "domain", domain)
		return fallbackSummary, fmt.Errorf("insight service returned status %d", resp.StatusCode)
	}

	var apiResponse struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return fallbackSummary, fmt.Errorf("failed to decode insight response: %w", err)
	}

	if apiResponse.Summary == "" {
		return fallbackSummary, nil
	}
	return apiResponse.Summary, nil
}

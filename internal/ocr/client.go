package ocr

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
	"strings"
	"time"
)

const (
	DefaultModelID      = "erg-monitor-reader-v4"
	DefaultAPIVersion   = "2024-11-30"
	DefaultLocale       = "en-US"
	DefaultPollInterval = 3 * time.Second
	DefaultMaxPolls     = 20
)

// DefaultQueryFields are the table fields the custom model is asked to
// extract explicitly.
var DefaultQueryFields = []string{"StandardTable", "IntervalTable", "VariableIntervalTable"}

var (
	// ErrMissingCredentials is returned when endpoint or key is unset.
	ErrMissingCredentials = errors.New("ocr: document intelligence credentials not provided")

	// ErrAnalyzeTimeout is returned when polling attempts are exhausted
	// before the operation completes.
	ErrAnalyzeTimeout = errors.New("ocr: analysis timed out")
)

// TransportError wraps failures of the analyze protocol itself, as opposed to
// timeouts, so callers can distinguish the two.
type TransportError struct {
	Stage string // "submit" or "poll"
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ocr: %s failed: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config holds the connection and protocol parameters of the gateway.
type Config struct {
	Endpoint     string
	Key          string
	ModelID      string
	APIVersion   string
	Locale       string
	QueryFields  []string
	PollInterval time.Duration
	MaxPolls     int
}

// WithDefaults fills unset fields with package defaults. Endpoint and Key
// have no defaults; they come from configuration.
func (c Config) WithDefaults() Config {
	if c.ModelID == "" {
		c.ModelID = DefaultModelID
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.QueryFields == nil {
		c.QueryFields = DefaultQueryFields
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPolls <= 0 {
		c.MaxPolls = DefaultMaxPolls
	}
	return c
}

// Client submits images for analysis and polls for results.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. A nil httpClient falls back to a client with a
// conservative request timeout.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg.WithDefaults(), http: httpClient, logger: logger.With("component", "ocr")}
}

// Analyze submits the image bytes and polls until the operation succeeds,
// fails, or the attempt budget runs out. Cancelling the context aborts the
// poll loop.
func (c *Client) Analyze(ctx context.Context, imageBytes []byte) (*AnalyzeResult, error) {
	if c.cfg.Endpoint == "" || c.cfg.Key == "" {
		return nil, ErrMissingCredentials
	}

	opLocation, err := c.submit(ctx, imageBytes)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("analysis submitted", "model_id", c.cfg.ModelID, "operation", opLocation)
	return c.poll(ctx, opLocation)
}

func (c *Client) analyzeURL() string {
	endpoint := strings.TrimSuffix(c.cfg.Endpoint, "/")
	q := url.Values{}
	q.Set("api-version", c.cfg.APIVersion)
	q.Set("locale", c.cfg.Locale)
	q.Set("includeFieldElements", "true")
	if len(c.cfg.QueryFields) > 0 {
		q.Set("features", "queryFields")
		q.Set("queryFields", strings.Join(c.cfg.QueryFields, ","))
	}
	return fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?%s",
		endpoint, c.cfg.ModelID, q.Encode())
}

func (c *Client) submit(ctx context.Context, imageBytes []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL(), bytes.NewReader(imageBytes))
	if err != nil {
		return "", &TransportError{Stage: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.Key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Stage: "submit", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &TransportError{
			Stage: "submit",
			Err:   fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	opLocation := resp.Header.Get("Operation-Location")
	if opLocation == "" {
		return "", &TransportError{Stage: "submit", Err: errors.New("no Operation-Location header returned")}
	}
	return opLocation, nil
}

func (c *Client) poll(ctx context.Context, opLocation string) (*AnalyzeResult, error) {
	for attempt := 1; attempt <= c.cfg.MaxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrAnalyzeTimeout, ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}

		status, err := c.pollOnce(ctx, opLocation)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case "succeeded":
			c.logger.Debug("analysis completed", "attempts", attempt)
			if status.AnalyzeResult == nil {
				return nil, &TransportError{Stage: "poll", Err: errors.New("succeeded without analyzeResult")}
			}
			return status.AnalyzeResult, nil
		case "failed":
			msg := "unknown error"
			if status.Error != nil && status.Error.Message != "" {
				msg = status.Error.Message
			}
			return nil, &TransportError{Stage: "poll", Err: fmt.Errorf("analysis failed: %s", msg)}
		}
		c.logger.Debug("analysis pending", "status", status.Status, "attempt", attempt)
	}
	return nil, fmt.Errorf("%w after %d polling attempts", ErrAnalyzeTimeout, c.cfg.MaxPolls)
}

func (c *Client) pollOnce(ctx context.Context, opLocation string) (*operationStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opLocation, nil)
	if err != nil {
		return nil, &TransportError{Stage: "poll", Err: err}
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.Key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Stage: "poll", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var status operationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &TransportError{Stage: "poll", Err: fmt.Errorf("decoding poll response: %w", err)}
	}
	return &status, nil
}

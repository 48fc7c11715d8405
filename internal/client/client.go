// Package client is the HTTP client for the FAQ backend. Every call gets a
// bounded per-attempt timeout; timed-out attempts are cancelled and retried
// up to a fixed budget, while a received error response is final.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/campusgate/faqbot-backend/internal/faq"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// APIError is a definitive error response from the server. It is never
// retried: the network delivered an answer, the answer was an error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// TransportError reports that the retry budget was exhausted without any
// attempt completing.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Options struct {
	BaseURL string
	// Timeout bounds each attempt; every retry gets a fresh window.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int
	// Headers are merged into every request.
	Headers    http.Header
	HTTPClient *http.Client
	Logger     *logger.Logger
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	headers    http.Header
	httpClient *http.Client
	log        *logger.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		headers:    opts.Headers,
		httpClient: opts.HTTPClient,
		log:        opts.Logger.With("component", "api_client"),
	}
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isTimeout reports whether an attempt died to its deadline rather than to
// a delivered response or a hard transport fault.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}

		// A response from the server, error or not, is final.
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return err
		}
		// Only timed-out attempts are worth repeating; connection refusals
		// and DNS failures propagate as-is.
		if !isTimeout(err) || ctx.Err() != nil {
			return err
		}
		if attempt == c.maxRetries {
			return &TransportError{Attempts: attempt + 1, Err: err}
		}

		c.log.Warn("request timed out, retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
		)
	}
	return fmt.Errorf("unreachable retry loop")
}

// GetQuestions fetches the question list for a section.
func (c *Client) GetQuestions(ctx context.Context, section string) ([]string, error) {
	var out struct {
		Questions []string `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, "/questions/"+url.PathEscape(section), nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

type askRequest struct {
	Section        string `json:"section"`
	QuestionNumber int    `json:"questionNumber"`
}

// Ask retrieves the canned answer for a 1-based question number.
func (c *Client) Ask(ctx context.Context, section string, questionNumber int) (faq.AnswerPayload, error) {
	var out faq.AnswerPayload
	req := askRequest{Section: section, QuestionNumber: questionNumber}
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return faq.AnswerPayload{}, err
	}
	return out, nil
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campusgate/faqbot-backend/internal/platform/logger"
)

// stallUntil answers requests with the given handler once attempts reach
// succeedOn; earlier attempts stall past the client timeout.
func stallUntil(attempts *atomic.Int32, succeedOn int32, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n < succeedOn {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		h(w, r)
	}
}

func questionsOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"questions":["Is the program online?"]}`))
}

func TestRetriesTimedOutAttemptsThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(stallUntil(&attempts, 3, questionsOK))
	defer srv.Close()

	c := New(Options{
		BaseURL:    srv.URL,
		Timeout:    50 * time.Millisecond,
		MaxRetries: 3,
		Logger:     logger.NewNop(),
	})
	questions, err := c.GetQuestions(context.Background(), "faq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("unexpected attempt count: got=%d want=3", got)
	}
	if len(questions) != 1 {
		t.Fatalf("unexpected questions: %v", questions)
	}
}

func TestExhaustedBudgetFailsWithTransportError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(stallUntil(&attempts, 99, questionsOK))
	defer srv.Close()

	c := New(Options{
		BaseURL:    srv.URL,
		Timeout:    30 * time.Millisecond,
		MaxRetries: 2,
		Logger:     logger.NewNop(),
	})
	_, err := c.GetQuestions(context.Background(), "faq")

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if tErr.Attempts != 3 {
		t.Fatalf("unexpected attempts in error: got=%d want=3", tErr.Attempts)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("unexpected attempt count: got=%d want=3", got)
	}
}

func TestErrorResponseIsFinalAndDecoded(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid section or question number"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, MaxRetries: 3, Logger: logger.NewNop()})
	_, err := c.Ask(context.Background(), "faq", 999)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d", apiErr.Status)
	}
	if apiErr.Message != "Invalid section or question number" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("error responses must not be retried: attempts=%d", got)
	}
}

func TestServerErrorResponseIsFinal(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, MaxRetries: 3, Logger: logger.NewNop()})
	_, err := c.GetQuestions(context.Background(), "faq")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("5xx responses must not be retried: attempts=%d", got)
	}
}

func TestConnectionFailurePropagatesWithoutRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(questionsOK))
	srv.Close() // nothing listens anymore

	start := time.Now()
	c := New(Options{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		Logger:     logger.NewNop(),
	})
	_, err := c.GetQuestions(context.Background(), "faq")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		t.Fatalf("connection refusal must not consume the retry budget: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("connection failure took %v, looks retried", elapsed)
	}
}

func TestCancelledContextStopsRetrying(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(stallUntil(&attempts, 99, questionsOK))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	c := New(Options{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 5,
		Logger:     logger.NewNop(),
	})
	_, err := c.GetQuestions(ctx, "faq")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestsCarryContentTypeAndMergedHeaders(t *testing.T) {
	var gotContentType, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Client")
		questionsOK(w, r)
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("X-Client", "faqchat")
	c := New(Options{BaseURL: srv.URL, Headers: headers, Logger: logger.NewNop()})
	if _, err := c.GetQuestions(context.Background(), "faq"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("missing content type: got=%q", gotContentType)
	}
	if gotCustom != "faqchat" {
		t.Fatalf("custom header not merged: got=%q", gotCustom)
	}
}

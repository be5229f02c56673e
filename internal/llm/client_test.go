package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonQuote(content) + `}}]}`
}

func jsonQuote(s string) string {
	// Good enough for test fixtures without embedded quotes.
	return `"` + s + `"`
}

func TestCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Write([]byte(completionBody("hello")))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Complete() = %q, want %q", got, "hello")
	}
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("eventually")))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete() failed after retries: %v", err)
	}
	if got != "eventually" {
		t.Errorf("Complete() = %q, want %q", got, "eventually")
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad request"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("Complete() should fail on 400")
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Errorf("got %q after %d calls, want %q after 2", got, calls, "ok")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	ctx := context.Background()
	msgs := []Message{{Role: "user", Content: "hi"}}

	for i := 0; i < 3; i++ {
		if _, err := c.Complete(ctx, msgs); err == nil {
			t.Fatalf("attempt %d should fail", i)
		}
	}

	_, err := c.Complete(ctx, msgs)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("after repeated failures err = %v, want ErrCircuitOpen", err)
	}
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Error("Complete() without API key should fail")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowEnforcesBurst(t *testing.T) {
	s := NewLimiterStore(1, 2, time.Minute)
	defer s.Stop()

	if !s.Allow("a") || !s.Allow("a") {
		t.Fatal("burst requests should be allowed")
	}
	if s.Allow("a") {
		t.Fatal("request beyond burst should be denied")
	}
	// Other keys are unaffected.
	if !s.Allow("b") {
		t.Fatal("separate key should have its own budget")
	}
}

func TestLimitReturns429(t *testing.T) {
	s := NewLimiterStore(1, 1, time.Minute)
	defer s.Stop()

	handler := s.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
}

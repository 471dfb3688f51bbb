package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
	"github.com/fleveque/therapist-finder/internal/model"
)

type stubFinder struct {
	calls int
}

func (f *stubFinder) FindTherapists(_ context.Context, _ string) ([]model.Therapist, error) {
	f.calls++
	return []model.Therapist{
		{Name: "Dr. Ada Park", Specialty: "CBT", Address: "100 Wilshire Blvd", Phone: "(310) 555-0101"},
	}, nil
}

func testConfig(apiKeys ...string) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth:      config.AuthConfig{APIKeys: apiKeys},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2},
		Log:       config.LogConfig{Level: "info"},
	}
}

func serve(s *Server, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func newTestServer(finder *stubFinder, apiKeys ...string) *Server {
	return newServerWithConfig(testConfig(apiKeys...), finder)
}

func newServerWithConfig(cfg *config.Config, finder *stubFinder) *Server {
	s, err := New(cfg, Deps{Finder: finder, Provider: "gemini", Model: "gemini-2.5-flash"}, zap.NewNop())
	if err != nil {
		panic(err)
	}
	return s
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	finder := &stubFinder{}
	s := newTestServer(finder, "secret")

	for _, target := range []string{"/healthz", "/", "/search?zipcode=90210"} {
		if w := serve(s, "GET", target, nil); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, w.Code)
		}
	}
	if finder.calls != 1 {
		t.Errorf("expected only /search to call the finder, got %d calls", finder.calls)
	}
}

func TestRoutes_APIRequiresConfiguredKey(t *testing.T) {
	s := newTestServer(&stubFinder{}, "secret")

	if w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", map[string]string{"X-API-Key": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dr. Ada Park") {
		t.Errorf("expected therapist in body, got %s", w.Body.String())
	}
}

func TestRoutes_APIOpenAndRateLimited(t *testing.T) {
	finder := &stubFinder{}
	s := newTestServer(finder)

	for i := 0; i < 2; i++ {
		if w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", w.Code)
	}
	if finder.calls != 2 {
		t.Errorf("rate-limited request must not reach the finder, got %d calls", finder.calls)
	}
}

func TestRoutes_Preflight(t *testing.T) {
	s := newTestServer(&stubFinder{}, "secret")

	w := serve(s, "OPTIONS", "/api/v1/therapists", map[string]string{"Origin": "http://localhost:3000"})

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("expected CORS header on preflight")
	}
}

func TestRoutes_ForwardedForCannotDodgeRateLimit(t *testing.T) {
	finder := &stubFinder{}
	s := newTestServer(finder)

	var codes []int
	for i := 0; i < 4; i++ {
		w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", map[string]string{
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1),
		})
		codes = append(codes, w.Code)
	}

	if codes[2] != http.StatusTooManyRequests || codes[3] != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the peer's burst is spent, got %v", codes)
	}
	if finder.calls != 2 {
		t.Errorf("expected 2 finder calls, got %d", finder.calls)
	}
}

func TestRoutes_TrustedProxyForwardsClientIP(t *testing.T) {
	cfg := testConfig()
	// httptest requests come from 192.0.2.1
	cfg.Server.TrustedProxies = []string{"192.0.2.1"}
	finder := &stubFinder{}
	s := newServerWithConfig(cfg, finder)

	for i := 0; i < 4; i++ {
		w := serve(s, "GET", "/api/v1/therapists?zipcode=90210", map[string]string{
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1),
		})
		if w.Code != http.StatusOK {
			t.Errorf("client %d behind trusted proxy: expected 200, got %d", i, w.Code)
		}
	}
}

func TestNew_RejectsBadTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.Server.TrustedProxies = []string{"not-an-ip"}

	if _, err := New(cfg, Deps{Finder: &stubFinder{}}, zap.NewNop()); err == nil {
		t.Error("expected error for invalid trusted proxy")
	}
}

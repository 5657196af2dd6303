package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordchain/pkg/cache"
	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/observability"
	"github.com/matzehuels/wordchain/pkg/pipeline"
)

func newTestServer(t *testing.T, c cache.Cache, cfg Config) *Server {
	t.Helper()
	solver, err := chain.NewSolver(chain.Options{Mode: chain.ModeSingle, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(solver, c, nil, logger)
	t.Cleanup(func() { runner.Close() })

	s, err := New(runner, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, nil, Config{})

	rec := do(t, s, http.MethodPost, "/v1/solve", `{"items": ["aaxx", "xxyy", "yyzz", "zzaa"], "mode": "parallel"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != "aaxxyyzzaa" {
		t.Errorf("result = %q", resp.Result)
	}
	if !slices.Equal(resp.Path, []int{0, 1, 2, 3}) || resp.Length != 4 {
		t.Errorf("path = %v, length = %d", resp.Path, resp.Length)
	}
	if resp.Mode != "parallel" {
		t.Errorf("mode = %q", resp.Mode)
	}
	if resp.ID == "" || resp.ID != rec.Header().Get("X-Request-Id") {
		t.Errorf("id = %q, header = %q", resp.ID, rec.Header().Get("X-Request-Id"))
	}
}

func TestSolve_EmptyItems(t *testing.T) {
	s := newTestServer(t, nil, Config{})

	rec := do(t, s, http.MethodPost, "/v1/solve", `{"items": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"path":[]`) || !strings.Contains(rec.Body.String(), `"result":""`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestSolve_Cached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, fc, Config{})
	body := `{"items": ["ab", "cd"]}`

	first := do(t, s, http.MethodPost, "/v1/solve", body)
	second := do(t, s, http.MethodPost, "/v1/solve", body)

	if !strings.Contains(first.Body.String(), `"cached":false`) {
		t.Errorf("first body = %s", first.Body)
	}
	if !strings.Contains(second.Body.String(), `"cached":true`) {
		t.Errorf("second body = %s", second.Body)
	}
}

func TestSolve_Errors(t *testing.T) {
	s := newTestServer(t, nil, Config{MaxItems: 3, MaxBodyBytes: 256})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"Malformed", `{"items": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"MissingItems", `{"mode": "single"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"UnknownField", `{"items": [], "colour": "red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"BadMode", `{"items": ["ab"], "mode": "gpu"}`, http.StatusBadRequest, "INVALID_MODE"},
		{"Newline", `{"items": ["a\nb"]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"TooManyItems", `{"items": ["a", "b", "c", "d"]}`, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"BodyTooLarge", `{"items": ["` + strings.Repeat("x", 400) + `"]}`, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/solve", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %s", rec.Body)
			}
			if string(body.Error.Code) != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestSolve_SolverClosed(t *testing.T) {
	s := newTestServer(t, nil, Config{})
	s.runner.Close()

	rec := do(t, s, http.MethodPost, "/v1/solve", `{"items": ["ab"], "mode": "parallel"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 (body %s)", rec.Code, rec.Body)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, Config{})

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, nil, Config{})

	if rec := do(t, s, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/v1/solve", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/solve status = %d, want 405", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil, Config{})
	observability.SetSolveHooks(s.Metrics())
	observability.SetHTTPHooks(s.Metrics())
	t.Cleanup(observability.Reset)

	do(t, s, http.MethodPost, "/v1/solve", `{"items": ["aabb", "bbcc"]}`)
	do(t, s, http.MethodPost, "/v1/solve", `{"items": ["ab"], "mode": "gpu"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`wordchain_solves_total{mode="single",outcome="computed"} 1`,
		`wordchain_http_requests_total{method="POST",route="/v1/solve",status="200"} 1`,
		`wordchain_http_requests_total{method="POST",route="/v1/solve",status="400"} 1`,
		`wordchain_chain_length_items_count 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServe_Shutdown(t *testing.T) {
	s := newTestServer(t, nil, Config{ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/v1/solve", "application/json",
		bytes.NewBufferString(`{"items": ["aabb", "bbcc"]}`))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

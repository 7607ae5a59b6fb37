package devserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/logging"
	"github.com/vango-dev/dot/internal/tracetest"
)

var testFiles = fstest.MapFS{
	"index.html":          {Data: []byte("<html>index</html>")},
	"app.js":              {Data: []byte("console.log(1)")},
	"app.0123abcd.wasm":   {Data: []byte("wasm")},
	"pages/todos.js":      {Data: []byte("todos")},
	"pages/nested/x.json": {Data: []byte("{}")},
}

func newTestServer(t *testing.T, mutate func(*config.Config), opts ...Option) *Server {
	t.Helper()
	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	opts = append([]Option{WithFS(testFiles)}, opts...)
	return New(cfg, logging.Discard(), opts...)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name     string
		target   string
		status   int
		body     string
		location string
	}{
		{"root redirects", "/", http.StatusFound, "", "/example/"},
		{"bare prefix redirects", "/example", http.StatusMovedPermanently, "", "/example/"},
		{"prefix serves index", "/example/", http.StatusOK, "<html>index</html>", ""},
		{"existing file", "/example/app.js", http.StatusOK, "console.log(1)", ""},
		{"nested file", "/example/pages/todos.js", http.StatusOK, "todos", ""},
		{"spa fallback", "/example/todos/42", http.StatusOK, "<html>index</html>", ""},
		{"directory falls back", "/example/pages", http.StatusOK, "<html>index</html>", ""},
		{"traversal", "/example/../secret", http.StatusNotFound, "", ""},
		{"absolute", "/example//etc/passwd", http.StatusNotFound, "", ""},
		{"backslash", "/example/a%5C..%5Cb", http.StatusNotFound, "", ""},
		{"outside prefix", "/other", http.StatusNotFound, "", ""},
		{"hello api", "/api/todo", http.StatusOK, "Hello from API", ""},
		{"todos api", "/api/todos", http.StatusOK, "[]", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.target)
			if rec.Code != tt.status {
				t.Fatalf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
			}
			if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("GET %s body = %q, want it to contain %q", tt.target, rec.Body.String(), tt.body)
			}
			if tt.location != "" && rec.Header().Get("Location") != tt.location {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.location)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/example/")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response is missing X-Request-ID")
	}
}

func TestCacheHeaders(t *testing.T) {
	s := newTestServer(t, nil)

	tests := map[string]string{
		"/example/":                  "no-cache",
		"/example/todos":             "no-cache",
		"/example/app.js":            "public, max-age=3600, must-revalidate",
		"/example/app.0123abcd.wasm": "public, max-age=31536000, immutable",
	}
	for target, want := range tests {
		if got := get(t, s.Handler(), target).Header().Get("Cache-Control"); got != want {
			t.Errorf("GET %s Cache-Control = %q, want %q", target, got, want)
		}
	}
}

func TestAPIDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.API.Enabled = false })
	if s.API() != nil {
		t.Error("API() should be nil when disabled")
	}
	if rec := get(t, s.Handler(), "/api/todos"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/todos status = %d, want 404", rec.Code)
	}
}

func TestRootPrefix(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Static.Prefix = "/" })

	if rec := get(t, s.Handler(), "/"); rec.Code != http.StatusOK || rec.Body.String() != "<html>index</html>" {
		t.Errorf("GET / = %d %q, want the index", rec.Code, rec.Body.String())
	}
	if rec := get(t, s.Handler(), "/app.js"); rec.Body.String() != "console.log(1)" {
		t.Errorf("GET /app.js body = %q", rec.Body.String())
	}
}

func TestMissingIndex(t *testing.T) {
	cfg := config.New()
	s := New(cfg, logging.Discard(), WithFS(fstest.MapFS{}))
	if rec := get(t, s.Handler(), "/example/anything"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = true }, WithRegistry(reg))

	get(t, s.Handler(), "/example/todos")
	get(t, s.Handler(), "/api/todos")

	rec := get(t, s.Handler(), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`dot_http_requests_total{method="GET",route="/example/*",status="200"} 1`,
		`dot_http_requests_total{method="GET",route="/api/todos`,
		"dot_http_request_duration_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics is missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := get(t, s.Handler(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404", rec.Code)
	}
}

func TestTracing(t *testing.T) {
	rec := tracetest.New()
	s := newTestServer(t, func(c *config.Config) { c.Tracing.Enabled = true }, WithTracerProvider(rec))

	get(t, s.Handler(), "/example/about")

	spans := rec.Spans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].Name != "GET /example/*" {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if spans[0].Tracer != "dot" {
		t.Errorf("tracer = %q, want the service name", spans[0].Tracer)
	}
}

func TestServeShutsDown(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.ShutdownTimeout = "1s" })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/todo")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Hello from API") {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestShutdownTimeout(t *testing.T) {
	tests := map[string]time.Duration{
		"":      defaultShutdownTimeout,
		"bad":   defaultShutdownTimeout,
		"-1s":   defaultShutdownTimeout,
		"250ms": 250 * time.Millisecond,
	}
	for in, want := range tests {
		s := &Server{cfg: &config.Config{Server: config.ServerConfig{ShutdownTimeout: in}}}
		if got := s.shutdownTimeout(); got != want {
			t.Errorf("shutdownTimeout(%q) = %v, want %v", in, got, want)
		}
	}
}

package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_Enabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Endpoint: "localhost:4318", Insecure: true})
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewResource_ServiceName(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	res := newResource("")
	assert.Contains(t, res.String(), DefaultServiceName)

	res = newResource("custom")
	assert.Contains(t, res.String(), "custom")
}

// collector records the paths of OTLP export requests.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestNewProvider_ExportsSpans(t *testing.T) {
	tests := []struct {
		name     string
		env      bool // pass the server URL through OTEL_EXPORTER_OTLP_ENDPOINT
		endpoint func(serverURL string) string
		insecure bool
	}{
		{name: "env url", env: true},
		{name: "config url", endpoint: func(u string) string { return u }},
		{name: "config url with trailing slash", endpoint: func(u string) string { return u + "/" }},
		{name: "config host:port", endpoint: func(u string) string { return strings.TrimPrefix(u, "http://") }, insecure: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &collector{}
			srv := httptest.NewServer(c)
			defer srv.Close()

			cfg := Config{Insecure: tt.insecure}
			if tt.env {
				t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)
			} else {
				t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
				cfg.Endpoint = tt.endpoint(srv.URL)
			}

			ctx := context.Background()
			provider, err := NewProvider(ctx, cfg)
			require.NoError(t, err)
			require.NotNil(t, provider)
			defer provider.Shutdown(ctx)

			_, span := provider.Tracer("test").Start(ctx, "deck.save")
			span.End()
			require.NoError(t, provider.ForceFlush(ctx))

			assert.Equal(t, []string{"/v1/traces"}, c.Paths())
		})
	}
}

package transport_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/advances/pkg/logger"
	"github.com/samandr77/microservices/advances/pkg/transport"
)

//nolint:paralleltest
func TestBearerRoundTripper_RoundTrip(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := new(bytes.Buffer)

	now := time.Now().Format(time.DateOnly)

	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "time" {
				return slog.Attr{Key: a.Key, Value: slog.StringValue(now)}
			}
			return a
		},
	})))

	var gotAuth, gotReqID string

	mux := http.NewServeMux()
	mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")

		_, _ = fmt.Fprintf(w, `{"message": "hello world"}`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := &http.Client{
		Timeout:   time.Second * 10,
		Transport: transport.NewBearerRoundTripper(http.DefaultTransport, "secret"),
	}

	ctx := logger.WithRequestID(context.Background(), "req-42")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL+"/test", strings.NewReader(`{"data": "hi"}`))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "req-42", gotReqID)
	require.Empty(t, req.Header.Get("Authorization"), "caller request must stay untouched")

	req, err = http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/missing", nil)
	require.NoError(t, err)

	resp2, err := client.Do(req)
	require.NoError(t, err)

	defer resp2.Body.Close()

	require.Equal(t, http.StatusNotFound, resp2.StatusCode)

	require.Equal(t,
		fmt.Sprintf(`{"time":"%s","level":"INFO","msg":"outgoing request","request":"POST %s/test"}
{"time":"%s","level":"INFO","msg":"incoming response","response":"POST %s/test","status":200}
{"time":"%s","level":"INFO","msg":"outgoing request","request":"GET %s/missing"}
{"time":"%s","level":"INFO","msg":"incoming response","response":"GET %s/missing","status":404}
`, now, server.URL, now, server.URL, now, server.URL, now, server.URL), buf.String())
}

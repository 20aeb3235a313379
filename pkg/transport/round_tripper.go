package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samandr77/microservices/advances/pkg/logger"
)

// BearerRoundTripper propagates the request id, attaches a bearer token and
// logs every outgoing request together with the response status.
type BearerRoundTripper struct {
	Transport http.RoundTripper
	token     string
}

func NewBearerRoundTripper(transport http.RoundTripper, token string) *BearerRoundTripper {
	return &BearerRoundTripper{Transport: transport, token: token}
}

func (b *BearerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	// RoundTrip must not modify the caller's request.
	r = r.Clone(ctx)

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	if b.token != "" {
		r.Header.Set("Authorization", "Bearer "+b.token)
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	resp, err := b.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.InfoContext(ctx, "incoming response",
		"response", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
		"status", resp.StatusCode,
	)

	return resp, nil
}

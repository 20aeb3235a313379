package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/advances/pkg/logger"
)

//nolint:paralleltest
func TestHandler_ContextAttrs(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := new(bytes.Buffer)

	l, err := logger.NewWithWriter(buf, "debug")
	require.NoError(t, err)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithUsername(ctx, "admin")

	l.With("component", "test").InfoContext(ctx, "hello")

	var line map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "req-1", line["request_id"])
	require.Equal(t, "admin", line["username"])
	require.Equal(t, "test", line["component"])
}

//nolint:paralleltest
func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.NewWithWriter(new(bytes.Buffer), "loud")
	require.Error(t, err)
}

func TestRequestIDFromCtx(t *testing.T) {
	t.Parallel()

	require.Empty(t, logger.RequestIDFromCtx(context.Background()))
	require.Equal(t, "abc", logger.RequestIDFromCtx(logger.WithRequestID(context.Background(), "abc")))
}

func TestRedactJSON(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		body string
		want string
	}{
		{
			name: "password redacted",
			body: `{"username":"admin","password":"pw1"}`,
			want: `{"password":"***","username":"admin"}`,
		},
		{
			name: "no sensitive keys",
			body: `{"fields":{"name":"A"}}`,
			want: `{"fields":{"name":"A"}}`,
		},
		{
			name: "not json",
			body: `password=pw1`,
			want: `password=pw1`,
		},
		{
			name: "empty",
			body: ``,
			want: ``,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := logger.RedactJSON([]byte(tt.body), "password")
			require.Equal(t, tt.want, string(got))
		})
	}
}

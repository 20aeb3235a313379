package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

type ctxKey int8

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyUsername
)

const redacted = "***"

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		record.Add("request_id", v)
	}

	if v, ok := ctx.Value(ctxKeyUsername).(string); ok {
		record.Add("username", v)
	}

	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h.Handler.WithGroup(name)}
}

func New(level string) (*slog.Logger, error) {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) (*slog.Logger, error) {
	var sLevel slog.Level

	err := sLevel.UnmarshalText([]byte(level))
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: sLevel,
	}

	l := slog.New(&Handler{slog.NewJSONHandler(w, opts)})

	slog.SetDefault(l)

	return l, nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKeyUsername, username)
}

func RequestIDFromCtx(ctx context.Context) string {
	requestID, ok := ctx.Value(ctxKeyRequestID).(string)
	if !ok {
		return ""
	}

	return requestID
}

// RedactJSON replaces the values of the given top-level keys in a JSON object.
// Bodies that are not JSON objects are returned unchanged.
func RedactJSON(body []byte, keys ...string) []byte {
	var obj map[string]json.RawMessage

	if json.Unmarshal(body, &obj) != nil {
		return body
	}

	changed := false

	for _, k := range keys {
		if _, ok := obj[k]; ok {
			obj[k] = json.RawMessage(`"` + redacted + `"`)
			changed = true
		}
	}

	if !changed {
		return body
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return body
	}

	return b
}

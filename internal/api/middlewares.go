package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/unrolled/secure"

	"github.com/samandr77/microservices/advances/pkg/config"
	"github.com/samandr77/microservices/advances/pkg/logger"
)

var skipLogging = map[string]struct{}{
	"/api/health": {},
}

// UsernameHeader lets clients label their requests in the logs. It is not
// an authentication mechanism.
const UsernameHeader = "X-Username"

type Middleware struct {
	corsOrigins []string
	secure      *secure.Secure
}

func NewMiddleware(cfg config.HTTP) *Middleware {
	origins := slices.DeleteFunc(slices.Clone(cfg.CorsOrigins), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})

	m := &Middleware{corsOrigins: origins}

	if cfg.SecureHeaders {
		m.secure = secure.New(secure.Options{
			FrameDeny:          true,
			ContentTypeNosniff: true,
			BrowserXssFilter:   true,
			ReferrerPolicy:     "strict-origin-when-cross-origin",
		})
	}

	return m
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		ctx = logger.WithRequestID(ctx, requestID)
		w.Header().Set("X-Request-Id", requestID)

		if username := r.Header.Get(UsernameHeader); username != "" {
			ctx = logger.WithUsername(ctx, username)
		}

		_, skip := skipLogging[r.URL.Path]
		if !skip && !strings.HasPrefix(r.URL.Path, "/api/swagger/") {
			reqBody, err := io.ReadAll(r.Body)
			if err != nil {
				SendJSONErr(ctx, w, http.StatusInternalServerError, err, "read request body")
				return
			}

			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))

			var headers strings.Builder

			for k, v := range r.Header {
				if k == "Authorization" || k == "Cookie" {
					continue
				}

				headers.WriteString(fmt.Sprintf("%s: %s,\n", k, v))
			}

			slog.InfoContext(ctx, "incoming request",
				"request", fmt.Sprintf("%s %s\n%s", r.Method, r.URL.Redacted(), logger.RedactJSON(reqBody, "password")),
				"headers", headers.String(),
			)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "recovered from panic", "error", err, "stack", string(debug.Stack()))
				SendJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Cors echoes the request origin. With a configured allow list only listed
// origins are echoed.
func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case len(m.corsOrigins) == 0 && origin != "":
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case len(m.corsOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(m.corsOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Origin, Accept, User-Agent, Cache-Control, X-Request-Id, "+UsernameHeader)

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Secure sets the browser security headers. It is a no-op when they are
// disabled in the config.
func (m *Middleware) Secure(next http.Handler) http.Handler {
	if m.secure == nil {
		return next
	}

	return m.secure.Handler(next)
}

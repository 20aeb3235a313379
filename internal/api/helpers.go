package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samandr77/microservices/advances/internal/entity"
)

// ErrorResponse carries either a message or the body returned by the remote
// table service.
type ErrorResponse struct {
	Error  any               `json:"error" swaggertype:"string"`
	Fields map[string]string `json:"fields,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	if originErr != nil {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error(), "status", code)
	}

	SendJSON(ctx, w, code, ErrorResponse{Error: msgToSend})
}

// SendRemoteErr passes a remote failure through with its status and body.
// Any other error becomes a 500 carrying msgToSend.
func SendRemoteErr(ctx context.Context, w http.ResponseWriter, err error, msgToSend string) {
	var remote *entity.RemoteError
	if !errors.As(err, &remote) {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, msgToSend)
		return
	}

	slog.ErrorContext(ctx, "remote error", "error", err.Error(), "status", remote.StatusCode)
	SendJSON(ctx, w, remote.StatusCode, ErrorResponse{Error: remote.Payload()})
}

func SendValidationErr(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		slog.InfoContext(ctx, "validation failed", "error", err.Error())
		SendJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: verr.Fields})

		return
	}

	SendJSONErr(ctx, w, http.StatusBadRequest, err, err.Error())
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

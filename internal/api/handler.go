package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
	"github.com/samandr77/microservices/advances/pkg/logger"
)

// @title RT Advances API
// @version 1.0
// @description Gateway between the radiotherapy advance payments dashboard and the remote table service
// @BasePath /api

type Service interface {
	Authenticate(ctx context.Context, username, password string) (entity.User, error)
	Records(ctx context.Context) ([]entity.Record, error)
	CreateRecord(ctx context.Context, f entity.Fields) (entity.Record, error)
	UpdateRecord(ctx context.Context, id string, p entity.Patch) (entity.Record, error)
	CloseBill(ctx context.Context, id, date string) (entity.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	View(ctx context.Context, q entity.ViewQuery) (entity.View, error)
	ValidateRecordForm(f entity.Fields) error
}

type Handler struct {
	s   Service
	now func() time.Time
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s:   s,
		now: time.Now,
	}
}

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success  bool   `json:"success"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Auth checks credentials against the users table
// @Summary Authenticate
// @Description Looks the user up by exact username and password. No session is created.
// @Tags auth
// @Accept json
// @Produce json
// @Param AuthRequest body AuthRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Username and password required"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Authentication service error"
// @Router /auth [post]
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AuthRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	user, err := h.s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		var remote *entity.RemoteError

		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Username and password required")
		case errors.Is(err, entity.ErrInvalidCredentials):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Invalid credentials")
		case errors.As(err, &remote):
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Authentication service error")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Internal server error")
		}

		return
	}

	ctx = logger.WithUsername(ctx, user.Username)
	slog.InfoContext(ctx, "login succeeded")

	SendJSON(ctx, w, http.StatusOK, AuthResponse{
		Success:  true,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role.String(),
	})
}

// Records returns every record of the records table
// @Summary List records
// @Description Follows the remote pagination cursor and returns all records in remote order
// @Tags records
// @Produce json
// @Success 200 {array} RecordResponse
// @Failure 500 {object} ErrorResponse "Failed to fetch records"
// @Router /records [get]
func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.s.Records(ctx)
	if err != nil {
		sendFetchErr(ctx, w, err)
		return
	}

	if records == nil {
		records = []entity.Record{}
	}

	SendJSON(ctx, w, http.StatusOK, records)
}

// RecordRequest carries a full field set. Unparseable amounts become zero.
type RecordRequest struct {
	Fields *entity.Fields `json:"fields" swaggertype:"object"`
}

// RecordResponse documents the shape of entity.Record.
type RecordResponse struct {
	ID      string         `json:"id"`
	Fields  map[string]any `json:"fields"`
	Created string         `json:"created"`
}

// CreateRecord creates a record
// @Summary Create record
// @Description Stores all nine fields. Empty dates are stored as empty.
// @Tags records
// @Accept json
// @Produce json
// @Param RecordRequest body RecordRequest true "Record fields"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 500 {object} ErrorResponse "Remote error body, with the remote status"
// @Router /records [post]
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	if req.Fields == nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, errors.New("missing fields"), "fields required")
		return
	}

	rec, err := h.s.CreateRecord(ctx, *req.Fields)
	if err != nil {
		SendRemoteErr(ctx, w, err, "Failed to create record")
		return
	}

	SendJSON(ctx, w, http.StatusOK, rec)
}

type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidateRecord checks a record against the entry form rules
// @Summary Validate record form
// @Description Reports every field that breaks the entry form rules. Nothing is stored.
// @Tags records
// @Accept json
// @Produce json
// @Param RecordRequest body RecordRequest true "Record fields"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Router /records/validate [post]
func (h *Handler) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	if req.Fields == nil {
		req.Fields = &entity.Fields{}
	}

	err = h.s.ValidateRecordForm(*req.Fields)
	if err != nil {
		var verr *entity.ValidationError
		if !errors.As(err, &verr) {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Internal server error")
			return
		}

		SendJSON(ctx, w, http.StatusOK, ValidateResponse{Valid: false, Fields: verr.Fields})

		return
	}

	SendJSON(ctx, w, http.StatusOK, ValidateResponse{Valid: true})
}

// PatchRequest carries a partial field set. Present keys are written, even
// when empty; absent keys are left unchanged.
type PatchRequest struct {
	Fields *entity.Patch `json:"fields" swaggertype:"object"`
}

// UpdateRecord partially updates a record
// @Summary Update record
// @Description Writes only the keys present in fields
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param PatchRequest body PatchRequest true "Fields to change"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 404 {object} ErrorResponse "Remote error body, with the remote status"
// @Router /records/{id} [patch]
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req PatchRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	if req.Fields == nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, errors.New("missing fields"), "fields required")
		return
	}

	rec, err := h.s.UpdateRecord(ctx, id, *req.Fields)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendValidationErr(ctx, w, err)
			return
		}

		SendRemoteErr(ctx, w, err, "Failed to update record")

		return
	}

	SendJSON(ctx, w, http.StatusOK, rec)
}

type CloseBillRequest struct {
	Date string `json:"date" example:"2024-05-01"`
}

// CloseBill sets the bill closed date of a record
// @Summary Close bill
// @Description Sets only the bill closed date. An empty body closes the bill today.
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param CloseBillRequest body CloseBillRequest false "Closing date"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 404 {object} ErrorResponse "Remote error body, with the remote status"
// @Router /records/{id}/close [post]
func (h *Handler) CloseBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req CloseBillRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	if req.Date == "" {
		req.Date = h.now().Format(entity.DateLayout)
	}

	rec, err := h.s.CloseBill(ctx, id, req.Date)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendValidationErr(ctx, w, err)
			return
		}

		SendRemoteErr(ctx, w, err, "Failed to close bill")

		return
	}

	SendJSON(ctx, w, http.StatusOK, rec)
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// DeleteRecord deletes a record
// @Summary Delete record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse "Remote error body, with the remote status"
// @Router /records/{id} [delete]
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.s.DeleteRecord(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendValidationErr(ctx, w, err)
			return
		}

		SendRemoteErr(ctx, w, err, "Failed to delete record")

		return
	}

	SendJSON(ctx, w, http.StatusOK, DeleteResponse{Deleted: true})
}

type ModeTotalResponse struct {
	Count  int         `json:"count"`
	Amount json.Number `json:"amount" swaggertype:"number"`
}

type StatsResponse struct {
	Total        int                          `json:"total"`
	Open         int                          `json:"open"`
	Closed       int                          `json:"closed"`
	TotalAmount  json.Number                  `json:"totalAmount" swaggertype:"number"`
	OpenAmount   json.Number                  `json:"openAmount" swaggertype:"number"`
	ClosedAmount json.Number                  `json:"closedAmount" swaggertype:"number"`
	ByMode       map[string]ModeTotalResponse `json:"byMode"`
	Recent       []entity.Record              `json:"recent" swaggertype:"array,object"`
	AmountTrend  []json.Number                `json:"amountTrend" swaggertype:"array,number"`
}

type ViewResponse struct {
	Records        []entity.Record `json:"records" swaggertype:"array,object"`
	FilteredAmount json.Number     `json:"filteredAmount" swaggertype:"number"`
	Stats          StatsResponse   `json:"stats"`
}

// View returns the filtered, sorted records and the dashboard aggregates
// @Summary Records view
// @Description Filters by search term, mode and bill status, then sorts. Aggregates cover all records.
// @Tags records
// @Produce json
// @Param search query string false "Case-insensitive search over name, registration number, IP number and amount"
// @Param mode query string false "Payment mode, All or empty for every mode" Enums(All, Cash, GPay, PhonePe, Card, NEFT, Cheque, UPI, Other)
// @Param status query string false "Bill status" Enums(All, Open, Closed) default(All)
// @Param sort query string false "Sort field" default(receiptDate)
// @Param dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Failed to fetch records"
// @Router /records/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, err := h.s.View(ctx, parseViewQuery(r))
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, err.Error())
			return
		}

		sendFetchErr(ctx, w, err)

		return
	}

	SendJSON(ctx, w, http.StatusOK, viewResponse(v))
}

// Export returns the filtered, sorted records as CSV
// @Summary Export records
// @Description Same filters as the records view, rendered as a CSV attachment
// @Tags records
// @Produce text/csv
// @Param search query string false "Search term"
// @Param mode query string false "Payment mode"
// @Param status query string false "Bill status" default(All)
// @Param sort query string false "Sort field" default(receiptDate)
// @Param dir query string false "Sort direction" default(desc)
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Failed to fetch records"
// @Router /records/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, err := h.s.View(ctx, parseViewQuery(r))
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, err.Error())
			return
		}

		sendFetchErr(ctx, w, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+dashboard.ExportFileName(h.now())+`"`)

	err = dashboard.WriteCSV(w, v.Records)
	if err != nil {
		slog.ErrorContext(ctx, "write csv", "error", err)
	}
}

// HealthHandler - returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func sendFetchErr(ctx context.Context, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var remote *entity.RemoteError
	if errors.As(err, &remote) {
		code = remote.StatusCode
	}

	SendJSONErr(ctx, w, code, err, "Failed to fetch records")
}

func parseViewQuery(r *http.Request) entity.ViewQuery {
	q := entity.DefaultViewQuery()
	values := r.URL.Query()

	q.Search = values.Get("search")

	if v := values.Get("mode"); v != "All" {
		q.Mode = entity.PaymentMode(v)
	}

	if v := values.Get("status"); v != "" {
		q.Status = entity.StatusFilter(v)
	}

	if v := values.Get("sort"); v != "" {
		q.SortBy = entity.SortField(v)
	}

	if v := values.Get("dir"); v != "" {
		q.Dir = entity.SortDir(v)
	}

	return q
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func viewResponse(v entity.View) ViewResponse {
	byMode := make(map[string]ModeTotalResponse, len(v.Stats.ByMode))
	for mode, t := range v.Stats.ByMode {
		byMode[mode.String()] = ModeTotalResponse{Count: t.Count, Amount: number(t.Amount)}
	}

	trend := make([]json.Number, 0, len(v.Stats.AmountTrend))
	for _, d := range v.Stats.AmountTrend {
		trend = append(trend, number(d))
	}

	records := v.Records
	if records == nil {
		records = []entity.Record{}
	}

	recent := v.Stats.Recent
	if recent == nil {
		recent = []entity.Record{}
	}

	return ViewResponse{
		Records:        records,
		FilteredAmount: number(v.FilteredAmount),
		Stats: StatsResponse{
			Total:        v.Stats.Total,
			Open:         v.Stats.Open,
			Closed:       v.Stats.Closed,
			TotalAmount:  number(v.Stats.TotalAmount),
			OpenAmount:   number(v.Stats.OpenAmount),
			ClosedAmount: number(v.Stats.ClosedAmount),
			ByMode:       byMode,
			Recent:       recent,
			AmountTrend:  trend,
		},
	}
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/advances/internal/entity"
	"github.com/samandr77/microservices/advances/pkg/transport"
)

// Client calls the advances gateway API.
type Client struct {
	baseURL  string
	username string
	http     *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewBearerRoundTripper(http.DefaultTransport, ""),
		},
	}
}

// As returns a copy of the client that labels its requests with username.
func (c *Client) As(username string) *Client {
	cp := *c
	cp.username = username

	return &cp
}

// Error is a non-success answer of the gateway. Message holds the error text
// or, for remote failures, the remote body as JSON.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected status code: %d, error: %s", e.StatusCode, e.Message)
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success  bool   `json:"success"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (c *Client) Login(ctx context.Context, username, password string) (entity.User, error) {
	var res authResponse

	err := c.do(ctx, http.MethodPost, "/auth", nil, authRequest{Username: username, Password: password}, &res)
	if err != nil {
		return entity.User{}, err
	}

	return entity.User{Name: res.Name, Username: res.Username, Role: entity.UserRole(res.Role)}, nil
}

func (c *Client) Records(ctx context.Context) ([]entity.Record, error) {
	var records []entity.Record

	err := c.do(ctx, http.MethodGet, "/records", nil, nil, &records)
	if err != nil {
		return nil, err
	}

	return records, nil
}

type statsResponse struct {
	Total        int                                     `json:"total"`
	Open         int                                     `json:"open"`
	Closed       int                                     `json:"closed"`
	TotalAmount  decimal.Decimal                         `json:"totalAmount"`
	OpenAmount   decimal.Decimal                         `json:"openAmount"`
	ClosedAmount decimal.Decimal                         `json:"closedAmount"`
	ByMode       map[entity.PaymentMode]entity.ModeTotal `json:"byMode"`
	Recent       []entity.Record                         `json:"recent"`
	AmountTrend  []decimal.Decimal                       `json:"amountTrend"`
}

type viewResponse struct {
	Records        []entity.Record `json:"records"`
	FilteredAmount decimal.Decimal `json:"filteredAmount"`
	Stats          statsResponse   `json:"stats"`
}

func (c *Client) View(ctx context.Context, q entity.ViewQuery) (entity.View, error) {
	var res viewResponse

	err := c.do(ctx, http.MethodGet, "/records/view", viewValues(q), nil, &res)
	if err != nil {
		return entity.View{}, err
	}

	return entity.View{
		Records:        res.Records,
		FilteredAmount: res.FilteredAmount,
		Stats: entity.Stats{
			Total:        res.Stats.Total,
			Open:         res.Stats.Open,
			Closed:       res.Stats.Closed,
			TotalAmount:  res.Stats.TotalAmount,
			OpenAmount:   res.Stats.OpenAmount,
			ClosedAmount: res.Stats.ClosedAmount,
			ByMode:       res.Stats.ByMode,
			Recent:       res.Stats.Recent,
			AmountTrend:  res.Stats.AmountTrend,
		},
	}, nil
}

type fieldsRequest struct {
	Fields any `json:"fields"`
}

func (c *Client) Create(ctx context.Context, f entity.Fields) (entity.Record, error) {
	var rec entity.Record

	err := c.do(ctx, http.MethodPost, "/records", nil, fieldsRequest{Fields: f}, &rec)
	if err != nil {
		return entity.Record{}, err
	}

	return rec, nil
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields"`
}

// Validate returns the fields that break the entry form rules, keyed by
// field name. An empty map means the record is valid.
func (c *Client) Validate(ctx context.Context, f entity.Fields) (map[string]string, error) {
	var res validateResponse

	err := c.do(ctx, http.MethodPost, "/records/validate", nil, fieldsRequest{Fields: f}, &res)
	if err != nil {
		return nil, err
	}

	if res.Valid {
		return map[string]string{}, nil
	}

	return res.Fields, nil
}

func (c *Client) Update(ctx context.Context, id string, p entity.Patch) (entity.Record, error) {
	var rec entity.Record

	err := c.do(ctx, http.MethodPatch, "/records/"+url.PathEscape(id), nil, fieldsRequest{Fields: p}, &rec)
	if err != nil {
		return entity.Record{}, err
	}

	return rec, nil
}

type closeBillRequest struct {
	Date string `json:"date,omitempty"`
}

// CloseBill closes the bill on date, or today when date is empty.
func (c *Client) CloseBill(ctx context.Context, id, date string) (entity.Record, error) {
	var rec entity.Record

	err := c.do(ctx, http.MethodPost, "/records/"+url.PathEscape(id)+"/close", nil, closeBillRequest{Date: date}, &rec)
	if err != nil {
		return entity.Record{}, err
	}

	return rec, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil, nil)
}

// Export streams the CSV export of the records matching q into w.
func (c *Client) Export(ctx context.Context, q entity.ViewQuery, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/records/export", viewValues(q), nil)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseErr(resp)
	}

	_, err = io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("copy response: %w", err)
	}

	return nil
}

func viewValues(q entity.ViewQuery) url.Values {
	v := url.Values{}

	if q.Search != "" {
		v.Set("search", q.Search)
	}

	if q.Mode != "" {
		v.Set("mode", q.Mode.String())
	}

	if q.Status != "" {
		v.Set("status", q.Status.String())
	}

	if q.SortBy != "" {
		v.Set("sort", q.SortBy.String())
	}

	if q.Dir != "" {
		v.Set("dir", q.Dir.String())
	}

	return v
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	resp, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseErr(resp)
	}

	if out == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) (*http.Response, error) {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	reqURL := c.baseURL + path
	if len(query) != 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.username != "" {
		req.Header.Set("X-Username", c.username)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}

type errorResponse struct {
	Error  json.RawMessage   `json:"error"`
	Fields map[string]string `json:"fields"`
}

func responseErr(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	e := &Error{StatusCode: resp.StatusCode, Message: string(body)}

	var res errorResponse
	if json.Unmarshal(body, &res) == nil && len(res.Error) != 0 {
		var msg string
		if json.Unmarshal(res.Error, &msg) == nil {
			e.Message = msg
		} else {
			e.Message = string(res.Error)
		}

		e.Fields = res.Fields
	}

	return e
}

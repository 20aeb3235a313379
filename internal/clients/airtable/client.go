package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/advances/internal/entity"
	"github.com/samandr77/microservices/advances/pkg/config"
	"github.com/samandr77/microservices/advances/pkg/transport"
)

const (
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
)

// Client talks to one base of the remote table service.
type Client struct {
	baseURL string
	baseID  string
	http    *http.Client
}

func NewClient(cfg config.Airtable) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = defaultRetryWaitMin
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewBearerRoundTripper(http.DefaultTransport, cfg.AccessToken)

	retryClient.Logger = nil

	// Only connection failures are retried. Status codes are reported to the
	// caller as they are.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		baseURL: cfg.BaseURL,
		baseID:  cfg.BaseID,
		http:    retryClient.StandardClient(),
	}
}

// RemoteRecord is a row as the remote service returns it.
type RemoteRecord struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime"`
}

type Page struct {
	Records []RemoteRecord `json:"records"`
	Offset  string         `json:"offset"`
}

// Query narrows a list request. Zero values are omitted.
type Query struct {
	FilterByFormula string
	MaxRecords      int
	PageSize        int
	Fields          []string
}

func (q Query) values(offset string) url.Values {
	v := url.Values{}

	if q.FilterByFormula != "" {
		v.Set("filterByFormula", q.FilterByFormula)
	}

	if q.MaxRecords > 0 {
		v.Set("maxRecords", strconv.Itoa(q.MaxRecords))
	}

	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	for _, f := range q.Fields {
		v.Add("fields[]", f)
	}

	if offset != "" {
		v.Set("offset", offset)
	}

	return v
}

// Table addresses a single table of the base.
type Table struct {
	c  *Client
	id string
}

func (c *Client) Table(id string) *Table {
	return &Table{c: c, id: id}
}

func (t *Table) url() string {
	return fmt.Sprintf("%s/%s/%s", t.c.baseURL, url.PathEscape(t.c.baseID), url.PathEscape(t.id))
}

func (t *Table) recordURL(id string) string {
	return t.url() + "/" + url.PathEscape(id)
}

// Pages lazily walks the table following the pagination cursor. Every range
// over the returned sequence starts again from the first page. Iteration stops
// after the first error.
func (t *Table) Pages(ctx context.Context, q Query) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		offset := ""

		for {
			page, err := t.page(ctx, q, offset)
			if err != nil {
				yield(Page{}, err)
				return
			}

			if !yield(page, nil) || page.Offset == "" {
				return
			}

			offset = page.Offset
		}
	}
}

// All folds Pages into a single slice.
func (t *Table) All(ctx context.Context, q Query) ([]RemoteRecord, error) {
	var all []RemoteRecord

	for page, err := range t.Pages(ctx, q) {
		if err != nil {
			return nil, err
		}

		all = append(all, page.Records...)
	}

	return all, nil
}

func (t *Table) page(ctx context.Context, q Query, offset string) (Page, error) {
	reqURL := t.url()
	if v := q.values(offset); len(v) != 0 {
		reqURL += "?" + v.Encode()
	}

	var page Page

	err := t.c.do(ctx, http.MethodGet, reqURL, nil, &page)
	if err != nil {
		return Page{}, fmt.Errorf("list page: %w", err)
	}

	return page, nil
}

type writeRequest struct {
	Fields map[string]any `json:"fields"`
}

func (t *Table) Create(ctx context.Context, fields map[string]any) (RemoteRecord, error) {
	var rec RemoteRecord

	err := t.c.do(ctx, http.MethodPost, t.url(), writeRequest{Fields: fields}, &rec)
	if err != nil {
		return RemoteRecord{}, fmt.Errorf("create record: %w", err)
	}

	return rec, nil
}

// Update changes only the given fields of the record.
func (t *Table) Update(ctx context.Context, id string, fields map[string]any) (RemoteRecord, error) {
	var rec RemoteRecord

	err := t.c.do(ctx, http.MethodPatch, t.recordURL(id), writeRequest{Fields: fields}, &rec)
	if err != nil {
		return RemoteRecord{}, fmt.Errorf("update record %s: %w", id, err)
	}

	return rec, nil
}

func (t *Table) Delete(ctx context.Context, id string) error {
	err := t.c.do(ctx, http.MethodDelete, t.recordURL(id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-store")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &entity.RemoteError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()

	err = dec.Decode(out)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

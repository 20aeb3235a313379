package airtable_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/samandr77/microservices/advances/internal/clients/airtable"
	"github.com/samandr77/microservices/advances/pkg/config"
)

const (
	testToken   = "tok-test"
	testBaseID  = "appBase"
	testTableID = "tblRecords"
)

// fakeTable emulates a single remote table: cursor pagination, create,
// partial update and delete. Null and empty values are dropped the way the
// real service drops them.
type fakeTable struct {
	t        *testing.T
	mu       sync.Mutex
	pageSize int
	seq      int
	rows     []airtable.RemoteRecord
	writes   []map[string]any
	queries  []string
	failPage int // 1-based page that answers 503, 0 disables
	url      string
}

func newFakeTable(t *testing.T) (*fakeTable, *airtable.Client) {
	t.Helper()

	f := &fakeTable{t: t, pageSize: 2}

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	f.url = srv.URL + "/v0"

	return f, f.client(testToken)
}

func (f *fakeTable) client(token string) *airtable.Client {
	return airtable.NewClient(config.Airtable{
		BaseURL:     f.url,
		AccessToken: token,
		BaseID:      testBaseID,
	})
}

func (f *fakeTable) failOnPage(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failPage = n
}

func (f *fakeTable) listQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.queries...)
}

func (f *fakeTable) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.writes)
}

func (f *fakeTable) seed(fields ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range fields {
		f.rows = append(f.rows, f.newRow(v))
	}
}

func (f *fakeTable) newRow(fields map[string]any) airtable.RemoteRecord {
	f.seq++

	return airtable.RemoteRecord{
		ID:          fmt.Sprintf("rec%03d", f.seq),
		Fields:      compact(fields),
		CreatedTime: fmt.Sprintf("2024-01-01T00:00:%02d.000Z", f.seq),
	}
}

func (f *fakeTable) lastWrite() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.writes) == 0 {
		return nil
	}

	return f.writes[len(f.writes)-1]
}

func (f *fakeTable) row(id string) (airtable.RemoteRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rows {
		if r.ID == id {
			return r, true
		}
	}

	return airtable.RemoteRecord{}, false
}

func (f *fakeTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+testToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "AUTHENTICATION_REQUIRED"})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "v0" || parts[1] != testBaseID {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		return
	}

	switch {
	case len(parts) == 3 && r.Method == http.MethodGet:
		f.list(w, r)
	case len(parts) == 3 && r.Method == http.MethodPost:
		fields := f.decodeFields(r)
		row := f.newRow(fields)
		f.rows = append(f.rows, row)
		writeJSON(w, http.StatusOK, row)
	case len(parts) == 4 && r.Method == http.MethodPatch:
		f.update(w, r, parts[3])
	case len(parts) == 4 && r.Method == http.MethodDelete:
		f.delete(w, parts[3])
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "METHOD_NOT_ALLOWED"})
	}
}

func (f *fakeTable) list(w http.ResponseWriter, r *http.Request) {
	f.queries = append(f.queries, r.URL.RawQuery)

	start := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		start, _ = strconv.Atoi(v)
	}

	pageNo := start/f.pageSize + 1
	if f.failPage == pageNo {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "SERVICE_UNAVAILABLE"})
		return
	}

	rows := f.rows
	if formula := r.URL.Query().Get("filterByFormula"); formula != "" {
		rows = filterRows(rows, formula)
	}

	end := min(start+f.pageSize, len(rows))

	page := map[string]any{"records": rows[min(start, end):end]}
	if end < len(rows) {
		page["offset"] = strconv.Itoa(end)
	}

	writeJSON(w, http.StatusOK, page)
}

func (f *fakeTable) update(w http.ResponseWriter, r *http.Request, id string) {
	fields := f.decodeFields(r)

	for i, row := range f.rows {
		if row.ID != id {
			continue
		}

		for k, v := range fields {
			if v == nil || v == "" {
				delete(row.Fields, k)
			} else {
				row.Fields[k] = v
			}
		}

		f.rows[i] = row
		writeJSON(w, http.StatusOK, row)

		return
	}

	writeJSON(w, http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
}

func (f *fakeTable) delete(w http.ResponseWriter, id string) {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})

			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
}

func (f *fakeTable) decodeFields(r *http.Request) map[string]any {
	var body struct {
		Fields map[string]any `json:"fields"`
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := dec.Decode(&body); err != nil {
		f.t.Errorf("decode write body: %s", err)
	}

	f.writes = append(f.writes, body.Fields)

	return body.Fields
}

// filterRows understands the single formula shape the users directory sends.
func filterRows(rows []airtable.RemoteRecord, formula string) []airtable.RemoteRecord {
	var out []airtable.RemoteRecord

	for _, r := range rows {
		want := airtable.And(
			airtable.Eq(airtable.ColUsername, fmt.Sprint(r.Fields[airtable.ColUsername])),
			airtable.Eq(airtable.ColPassword, fmt.Sprint(r.Fields[airtable.ColPassword])),
		)
		if want == formula {
			out = append(out, r)
		}
	}

	return out
}

func compact(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))

	for k, v := range fields {
		if v != nil && v != "" {
			out[k] = v
		}
	}

	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer

	_ = json.NewEncoder(&buf).Encode(v)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

package gateway_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/advances/internal/api"
	"github.com/samandr77/microservices/advances/internal/clients/gateway"
	"github.com/samandr77/microservices/advances/internal/entity"
	"github.com/samandr77/microservices/advances/internal/mocks"
	"github.com/samandr77/microservices/advances/internal/service"
	"github.com/samandr77/microservices/advances/pkg/config"
)

type testEnv struct {
	client  *gateway.Client
	records *mocks.MockRecords
	users   *mocks.MockUsers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	records := mocks.NewMockRecords(ctrl)
	users := mocks.NewMockUsers(ctrl)

	router := api.NewRouter(api.NewHandler(service.New(records, users)), api.NewMiddleware(config.HTTP{}))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		client:  gateway.NewClient(srv.URL+"/api", 5*time.Second),
		records: records,
		users:   users,
	}
}

var asha = entity.Record{
	ID: "rec1",
	Fields: entity.Fields{
		RegNo:       "REG-1",
		OpDate:      "2024-04-01",
		Name:        "Asha Rao",
		Amount:      decimal.RequireFromString("2500.5"),
		Mode:        entity.PaymentModeUPI,
		ReceiptDate: "2024-04-02",
		TxnNo:       "UPI-1",
	},
	Created: "2024-04-02T09:00:00.000Z",
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	env.users.EXPECT().FindUser(gomock.Any(), "admin", "pw1").
		Return(entity.User{Name: "Dr. Admin", Username: "admin", Role: entity.RoleAdmin}, nil)
	env.users.EXPECT().FindUser(gomock.Any(), "admin", "bad").
		Return(entity.User{}, entity.ErrInvalidCredentials)

	user, err := env.client.Login(ctx, "admin", "pw1")
	require.NoError(t, err)
	require.Equal(t, entity.User{Name: "Dr. Admin", Username: "admin", Role: entity.RoleAdmin}, user)

	_, err = env.client.Login(ctx, "admin", "bad")

	var apiErr *gateway.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_Records(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.records.EXPECT().List(gomock.Any()).Return([]entity.Record{asha}, nil)

	records, err := env.client.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "rec1", records[0].ID)
	require.True(t, asha.Fields.Amount.Equal(records[0].Fields.Amount))
	require.Equal(t, asha.Fields.TxnNo, records[0].Fields.TxnNo)
}

func TestClient_RecordsRemoteFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.records.EXPECT().List(gomock.Any()).
		Return(nil, &entity.RemoteError{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{"error":"x"}`)})

	_, err := env.client.Records(context.Background())

	var apiErr *gateway.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, "Failed to fetch records", apiErr.Message)
}

func TestClient_View(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	closed := entity.Record{
		ID:      "rec2",
		Fields:  entity.Fields{Name: "Ravi", Amount: decimal.NewFromInt(100), Mode: entity.PaymentModeCash, BillClosed: "2024-05-01"},
		Created: "2024-04-03T09:00:00.000Z",
	}
	env.records.EXPECT().List(gomock.Any()).Return([]entity.Record{asha, closed}, nil)

	q := entity.DefaultViewQuery()
	q.Status = entity.StatusOpen

	v, err := env.client.View(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, v.Records, 1)
	require.Equal(t, "rec1", v.Records[0].ID)
	require.True(t, decimal.RequireFromString("2500.5").Equal(v.FilteredAmount))

	require.Equal(t, 2, v.Stats.Total)
	require.Equal(t, 1, v.Stats.Open)
	require.Equal(t, 1, v.Stats.Closed)
	require.True(t, decimal.RequireFromString("2600.5").Equal(v.Stats.TotalAmount))
	require.Equal(t, 1, v.Stats.ByMode[entity.PaymentModeCash].Count)
	require.True(t, decimal.NewFromInt(100).Equal(v.Stats.ByMode[entity.PaymentModeCash].Amount))
}

func TestClient_ViewInvalidQuery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	q := entity.DefaultViewQuery()
	q.SortBy = "nope"

	_, err := env.client.View(context.Background(), q)

	var apiErr *gateway.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_CreateAndValidate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	env.records.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f entity.Fields) (entity.Record, error) {
			require.Equal(t, "Asha Rao", f.Name)
			require.True(t, asha.Fields.Amount.Equal(f.Amount))

			return entity.Record{ID: "rec9", Fields: f, Created: "2024-04-05T00:00:00.000Z"}, nil
		})

	created, err := env.client.Create(ctx, asha.Fields)
	require.NoError(t, err)
	require.Equal(t, "rec9", created.ID)

	problems, err := env.client.Validate(ctx, asha.Fields)
	require.NoError(t, err)
	require.Empty(t, problems)

	bad := asha.Fields
	bad.Amount = decimal.Zero
	bad.TxnNo = ""

	problems, err = env.client.Validate(ctx, bad)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"amount": "must be greater than zero",
		"txnNo":  "is required unless mode is Cash",
	}, problems)
}

func TestClient_UpdateSendsOnlyGivenFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	env.records.EXPECT().Update(gomock.Any(), "rec1", entity.Patch{Name: entity.Some("Asha R")}).
		DoAndReturn(func(_ context.Context, _ string, p entity.Patch) (entity.Record, error) {
			rec := asha
			rec.Fields = p.Apply(rec.Fields)

			return rec, nil
		})

	rec, err := env.client.Update(context.Background(), "rec1", entity.Patch{Name: entity.Some("Asha R")})
	require.NoError(t, err)
	require.Equal(t, "Asha R", rec.Fields.Name)
	require.Equal(t, "UPI-1", rec.Fields.TxnNo)
}

func TestClient_CloseBill(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	env.records.EXPECT().Update(gomock.Any(), "rec1", entity.CloseBillPatch("2024-05-01")).
		DoAndReturn(func(_ context.Context, _ string, p entity.Patch) (entity.Record, error) {
			rec := asha
			rec.Fields = p.Apply(rec.Fields)

			return rec, nil
		})

	rec, err := env.client.CloseBill(ctx, "rec1", "2024-05-01")
	require.NoError(t, err)
	require.False(t, rec.IsOpen())

	today := time.Now().Format(entity.DateLayout)

	env.records.EXPECT().Update(gomock.Any(), "rec1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p entity.Patch) (entity.Record, error) {
			require.True(t, p.BillClosed.Set)
			require.NotEmpty(t, p.BillClosed.Value)

			rec := asha
			rec.Fields = p.Apply(rec.Fields)

			return rec, nil
		})

	rec, err = env.client.CloseBill(ctx, "rec1", "")
	require.NoError(t, err)
	require.Contains(t, []string{today, time.Now().Format(entity.DateLayout)}, rec.Fields.BillClosed)
}

func TestClient_DeleteRemoteError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	env.records.EXPECT().Delete(gomock.Any(), "rec1").Return(nil)
	env.records.EXPECT().Delete(gomock.Any(), "rec2").
		Return(&entity.RemoteError{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"NOT_FOUND"}`)})

	require.NoError(t, env.client.Delete(ctx, "rec1"))

	err := env.client.Delete(ctx, "rec2")

	var apiErr *gateway.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.JSONEq(t, `{"error":"NOT_FOUND"}`, apiErr.Message)
}

func TestClient_Export(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.records.EXPECT().List(gomock.Any()).Return([]entity.Record{asha}, nil)

	var buf bytes.Buffer

	err := env.client.Export(context.Background(), entity.DefaultViewQuery(), &buf)
	require.NoError(t, err)
	require.Equal(t,
		"Registration Number,OP Visit Date,IP Number,Patient Name,Amount,Mode,Transaction Number,Date of Receipt,Bill Closed Date\n"+
			"REG-1,2024-04-01,,Asha Rao,2500.5,UPI,UPI-1,2024-04-02,\n",
		buf.String())
}

func TestClient_RequestShape(t *testing.T) {
	t.Parallel()

	reqs := make(chan *http.Request, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[],"filteredAmount":0,"stats":{}}`))
	}))
	t.Cleanup(srv.Close)

	c := gateway.NewClient(srv.URL+"/api", time.Second).As("nurse")

	q := entity.ViewQuery{
		Search: "asha rao",
		Mode:   entity.PaymentModeCash,
		Status: entity.StatusClosed,
		SortBy: entity.SortByAmount,
		Dir:    entity.ASC,
	}

	_, err := c.View(context.Background(), q)
	require.NoError(t, err)

	got := <-reqs
	require.Equal(t, "/api/records/view", got.URL.Path)
	require.Equal(t, "nurse", got.Header.Get("X-Username"))
	require.Empty(t, got.Header.Get("Authorization"))
	require.Equal(t, "asha rao", got.URL.Query().Get("search"))
	require.Equal(t, "Cash", got.URL.Query().Get("mode"))
	require.Equal(t, "Closed", got.URL.Query().Get("status"))
	require.Equal(t, "amount", got.URL.Query().Get("sort"))
	require.Equal(t, "asc", got.URL.Query().Get("dir"))
}

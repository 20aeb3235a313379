package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
)

var (
	admin = entity.User{Name: "Dr. Admin", Username: "admin", Role: entity.RoleAdmin}
	team  = entity.User{Name: "Nurse", Username: "nurse", Role: entity.RoleTeam}
)

func loaded(user entity.User) dashboard.State {
	s := dashboard.Reduce(dashboard.NewState(), dashboard.LoggedIn{User: user})

	return dashboard.Reduce(s, dashboard.RecordsLoaded{Records: fixture()})
}

func TestReduce_Login(t *testing.T) {
	t.Parallel()

	s := dashboard.NewState()
	require.False(t, s.LoggedIn())
	require.Equal(t, entity.DefaultViewQuery(), s.Query)

	s = dashboard.Reduce(s, dashboard.LoggedIn{User: team})
	require.True(t, s.LoggedIn())
	require.Equal(t, team, *s.User)

	s = dashboard.Reduce(s, dashboard.RecordsLoaded{Records: fixture()})
	s = dashboard.Reduce(s, dashboard.SearchChanged{Search: "x"})

	s = dashboard.Reduce(s, dashboard.LoggedOut{})
	require.Equal(t, dashboard.NewState(), s)
}

func TestReduce_Permissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      *entity.User
		canEdit   bool
		canDelete bool
		canClose  bool
	}{
		{name: "admin", user: &admin, canEdit: true, canDelete: true, canClose: true},
		{name: "team", user: &team, canClose: true},
		{name: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := dashboard.NewState()
			if tt.user != nil {
				s = loaded(*tt.user)
			}

			open := fixture()[0]
			closed := fixture()[1]

			require.Equal(t, tt.canEdit, s.CanEdit())
			require.Equal(t, tt.canDelete, s.CanDelete())
			require.Equal(t, tt.canEdit, s.CanSetBillClosedOnCreate())
			require.Equal(t, tt.canClose, s.CanCloseBill(open))
			require.False(t, s.CanCloseBill(closed))
		})
	}
}

func TestReduce_Mutations(t *testing.T) {
	t.Parallel()

	s := loaded(admin)
	before := s.Records

	added := rec("7", "New", "10", entity.PaymentModeCash, "", "2024-01-07T10:00:00.000Z")
	s = dashboard.Reduce(s, dashboard.RecordAdded{Record: added})
	require.Len(t, s.Records, 7)
	require.Equal(t, added, s.Records[6])
	require.Equal(t, dashboard.Notice{Kind: dashboard.NoticeSuccess, Message: "Record added successfully!"}, s.Notice)
	require.Len(t, before, 6)

	upd := s.Records[0]
	upd.Fields.Name = "Asha R."
	s = dashboard.Reduce(s, dashboard.RecordUpdated{Record: upd})
	require.Equal(t, "Asha R.", s.Records[0].Fields.Name)
	require.Equal(t, "Asha Rao", before[0].Fields.Name)
	require.Equal(t, "Record updated!", s.Notice.Message)

	closed := s.Records[2]
	closed.Fields.BillClosed = "2024-06-01"
	s = dashboard.Reduce(s, dashboard.BillClosed{Record: closed})
	require.False(t, s.Records[2].IsOpen())
	require.Equal(t, "Bill closed successfully!", s.Notice.Message)

	s = dashboard.Reduce(s, dashboard.RecordDeleted{ID: "2"})
	require.Len(t, s.Records, 6)
	_, ok := s.Find("2")
	require.False(t, ok)
	require.Equal(t, "Record deleted.", s.Notice.Message)
	require.Equal(t, "2", before[1].ID)

	s = dashboard.Reduce(s, dashboard.NoticeDismissed{})
	require.True(t, s.Notice.IsZero())
}

func TestReduce_Failed(t *testing.T) {
	t.Parallel()

	s := loaded(team)
	records := s.Records

	s = dashboard.Reduce(s, dashboard.Failed{Message: dashboard.MsgLoadFailed})

	require.Equal(t, dashboard.Notice{Kind: dashboard.NoticeError, Message: "Failed to load records"}, s.Notice)
	require.Equal(t, records, s.Records)
}

func TestReduce_SortToggled(t *testing.T) {
	t.Parallel()

	s := loaded(team)
	require.Equal(t, entity.SortByReceiptDate, s.Query.SortBy)
	require.Equal(t, entity.DESC, s.Query.Dir)

	s = dashboard.Reduce(s, dashboard.SortToggled{Field: entity.SortByReceiptDate})
	require.Equal(t, entity.ASC, s.Query.Dir)

	s = dashboard.Reduce(s, dashboard.SortToggled{Field: entity.SortByAmount})
	require.Equal(t, entity.SortByAmount, s.Query.SortBy)
	require.Equal(t, entity.ASC, s.Query.Dir)

	s = dashboard.Reduce(s, dashboard.SortToggled{Field: entity.SortByAmount})
	require.Equal(t, entity.DESC, s.Query.Dir)
	require.Equal(t, []string{"3", "1", "5", "2", "4", "6"}, ids(s.View().Records))
}

func TestReduce_Filters(t *testing.T) {
	t.Parallel()

	s := loaded(team)

	s = dashboard.Reduce(s, dashboard.SearchChanged{Search: "a"})
	s = dashboard.Reduce(s, dashboard.ModeFilterChanged{Mode: entity.PaymentModeCash})
	s = dashboard.Reduce(s, dashboard.StatusFilterChanged{Status: entity.StatusOpen})

	v := s.View()
	require.ElementsMatch(t, []string{"1", "6"}, ids(v.Records))
	require.Equal(t, "1575", v.FilteredAmount.String())
	require.Equal(t, 6, v.Stats.Total)

	s = dashboard.Reduce(s, dashboard.FiltersCleared{})
	require.Empty(t, s.Query.Search)
	require.Empty(t, s.Query.Mode)
	require.Equal(t, entity.StatusAll, s.Query.Status)
	require.Len(t, s.View().Records, 6)
}

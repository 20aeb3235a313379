package dashboard

import (
	"slices"

	"github.com/samandr77/microservices/advances/internal/entity"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the transient message shown after an action.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func (n Notice) IsZero() bool {
	return n.Message == ""
}

const (
	MsgRecordAdded   = "Record added successfully!"
	MsgRecordUpdated = "Record updated!"
	MsgBillClosed    = "Bill closed successfully!"
	MsgRecordDeleted = "Record deleted."
	MsgLoadFailed    = "Failed to load records"
	MsgAddFailed     = "Failed to add record"
	MsgUpdateFailed  = "Failed to update record"
	MsgCloseFailed   = "Failed to close bill"
	MsgDeleteFailed  = "Failed to delete record"
	MsgNetworkError  = "Network error"
)

// State is everything a client session holds. It is only changed through
// Reduce; records are never mutated in place.
type State struct {
	User    *entity.User
	Records []entity.Record
	Query   entity.ViewQuery
	Notice  Notice
}

func NewState() State {
	return State{Query: entity.DefaultViewQuery()}
}

func (s State) LoggedIn() bool {
	return s.User != nil
}

func (s State) CanEdit() bool {
	return s.User != nil && s.User.IsAdmin()
}

func (s State) CanDelete() bool {
	return s.User != nil && s.User.IsAdmin()
}

// CanSetBillClosedOnCreate reports whether a new record may be created with
// its bill already closed.
func (s State) CanSetBillClosedOnCreate() bool {
	return s.User != nil && s.User.IsAdmin()
}

// CanCloseBill reports whether the bill of r can be closed by the session user.
func (s State) CanCloseBill(r entity.Record) bool {
	return s.User != nil && r.IsOpen()
}

// Find returns the record with the given id.
func (s State) Find(id string) (entity.Record, bool) {
	i := slices.IndexFunc(s.Records, func(r entity.Record) bool { return r.ID == id })
	if i < 0 {
		return entity.Record{}, false
	}

	return s.Records[i], true
}

// View is the table and the dashboard for the current query.
func (s State) View() entity.View {
	return Compute(s.Records, s.Query)
}

type Action interface {
	action()
}

type (
	LoggedIn            struct{ User entity.User }
	LoggedOut           struct{}
	RecordsLoaded       struct{ Records []entity.Record }
	RecordAdded         struct{ Record entity.Record }
	RecordUpdated       struct{ Record entity.Record }
	BillClosed          struct{ Record entity.Record }
	RecordDeleted       struct{ ID string }
	SearchChanged       struct{ Search string }
	ModeFilterChanged   struct{ Mode entity.PaymentMode }
	StatusFilterChanged struct{ Status entity.StatusFilter }
	SortToggled         struct{ Field entity.SortField }
	FiltersCleared      struct{}
	NoticeDismissed     struct{}
	Failed              struct{ Message string }
)

func (LoggedIn) action()            {}
func (LoggedOut) action()           {}
func (RecordsLoaded) action()       {}
func (RecordAdded) action()         {}
func (RecordUpdated) action()       {}
func (BillClosed) action()          {}
func (RecordDeleted) action()       {}
func (SearchChanged) action()       {}
func (ModeFilterChanged) action()   {}
func (StatusFilterChanged) action() {}
func (SortToggled) action()         {}
func (FiltersCleared) action()      {}
func (NoticeDismissed) action()     {}
func (Failed) action()              {}

// Reduce returns the state that follows s after a. It has no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoggedIn:
		next := NewState()
		user := a.User
		next.User = &user

		return next
	case LoggedOut:
		return NewState()
	case RecordsLoaded:
		s.Records = slices.Clone(a.Records)
	case RecordAdded:
		s.Records = append(slices.Clone(s.Records), a.Record)
		s.Notice = success(MsgRecordAdded)
	case RecordUpdated:
		s.Records = replace(s.Records, a.Record)
		s.Notice = success(MsgRecordUpdated)
	case BillClosed:
		s.Records = replace(s.Records, a.Record)
		s.Notice = success(MsgBillClosed)
	case RecordDeleted:
		s.Records = slices.DeleteFunc(slices.Clone(s.Records), func(r entity.Record) bool { return r.ID == a.ID })
		s.Notice = success(MsgRecordDeleted)
	case SearchChanged:
		s.Query.Search = a.Search
	case ModeFilterChanged:
		s.Query.Mode = a.Mode
	case StatusFilterChanged:
		s.Query.Status = a.Status
	case SortToggled:
		if s.Query.SortBy == a.Field {
			s.Query.Dir = s.Query.Dir.Toggle()
		} else {
			s.Query.SortBy = a.Field
			s.Query.Dir = entity.ASC
		}
	case FiltersCleared:
		s.Query.Search = ""
		s.Query.Mode = ""
		s.Query.Status = entity.StatusAll
	case NoticeDismissed:
		s.Notice = Notice{}
	case Failed:
		s.Notice = Notice{Kind: NoticeError, Message: a.Message}
	}

	return s
}

func success(msg string) Notice {
	return Notice{Kind: NoticeSuccess, Message: msg}
}

func replace(records []entity.Record, updated entity.Record) []entity.Record {
	out := slices.Clone(records)

	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}

	return out
}

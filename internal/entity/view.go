package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type SortField string

func (s SortField) String() string {
	return string(s)
}

const (
	SortByRegNo       SortField = KeyRegNo
	SortByOpDate      SortField = KeyOpDate
	SortByIPNo        SortField = KeyIPNo
	SortByName        SortField = KeyName
	SortByAmount      SortField = KeyAmount
	SortByMode        SortField = KeyMode
	SortByReceiptDate SortField = KeyReceiptDate
	SortByTxnNo       SortField = KeyTxnNo
	SortByBillClosed  SortField = KeyBillClosed
	SortByCreated     SortField = "created"
)

func (s SortField) IsValid() bool {
	switch s {
	case SortByRegNo, SortByOpDate, SortByIPNo, SortByName, SortByAmount, SortByMode,
		SortByReceiptDate, SortByTxnNo, SortByBillClosed, SortByCreated:
		return true
	}

	return false
}

type SortDir string

func (d SortDir) String() string {
	return string(d)
}

const (
	ASC  SortDir = "asc"
	DESC SortDir = "desc"
)

func (d SortDir) IsValid() bool {
	return d == ASC || d == DESC
}

func (d SortDir) Toggle() SortDir {
	if d == ASC {
		return DESC
	}

	return ASC
}

type StatusFilter string

func (s StatusFilter) String() string {
	return string(s)
}

const (
	StatusAll    StatusFilter = "All"
	StatusOpen   StatusFilter = "Open"
	StatusClosed StatusFilter = "Closed"
)

func (s StatusFilter) IsValid() bool {
	return s == StatusAll || s == StatusOpen || s == StatusClosed
}

// ViewQuery is the filter and sort state of the records table. An empty Mode
// matches every payment mode.
type ViewQuery struct {
	Search string
	Mode   PaymentMode
	Status StatusFilter
	SortBy SortField
	Dir    SortDir
}

// DefaultViewQuery shows everything, newest receipt first.
func DefaultViewQuery() ViewQuery {
	return ViewQuery{
		Status: StatusAll,
		SortBy: SortByReceiptDate,
		Dir:    DESC,
	}
}

func (q ViewQuery) Validate() error {
	if q.Mode != "" {
		err := q.Mode.Validate()
		if err != nil {
			return err
		}
	}

	if !q.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, q.Status)
	}

	if !q.SortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort field %q", ErrInvalidArgument, q.SortBy)
	}

	if !q.Dir.IsValid() {
		return fmt.Errorf("%w: unknown sort direction %q", ErrInvalidArgument, q.Dir)
	}

	return nil
}

type ModeTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Stats struct {
	Total        int
	Open         int
	Closed       int
	TotalAmount  decimal.Decimal
	OpenAmount   decimal.Decimal
	ClosedAmount decimal.Decimal
	ByMode       map[PaymentMode]ModeTotal
	Recent       []Record
	AmountTrend  []decimal.Decimal
}

type View struct {
	Records        []Record
	FilteredAmount decimal.Decimal
	Stats          Stats
}

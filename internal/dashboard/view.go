package dashboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/samandr77/microservices/advances/internal/entity"
)

// RecentLimit is the number of records shown as recent activity.
const RecentLimit = 5

// Apply filters records by q and sorts the result. The input is not modified.
func Apply(records []entity.Record, q entity.ViewQuery) []entity.Record {
	return Sort(Filter(records, q), q.SortBy, q.Dir)
}

// Filter keeps the records matching the search term, the payment mode and the
// bill status of q. An empty search term or mode matches everything.
func Filter(records []entity.Record, q entity.ViewQuery) []entity.Record {
	// A Caser keeps state, so each call gets its own.
	folder := cases.Fold()
	term := folder.String(strings.TrimSpace(q.Search))

	out := make([]entity.Record, 0, len(records))

	for _, r := range records {
		if term != "" && !matchesSearch(folder, r.Fields, term) {
			continue
		}

		if q.Mode != "" && r.Fields.Mode != q.Mode {
			continue
		}

		switch q.Status {
		case entity.StatusOpen:
			if !r.IsOpen() {
				continue
			}
		case entity.StatusClosed:
			if r.IsOpen() {
				continue
			}
		}

		out = append(out, r)
	}

	return out
}

func matchesSearch(folder cases.Caser, f entity.Fields, term string) bool {
	for _, v := range []string{f.Name, f.RegNo, f.IPNo, f.Amount.String()} {
		if strings.Contains(folder.String(v), term) {
			return true
		}
	}

	return false
}

// Sort returns a stably sorted copy of records. Amounts compare numerically,
// every other field compares as a string.
func Sort(records []entity.Record, by entity.SortField, dir entity.SortDir) []entity.Record {
	out := slices.Clone(records)

	slices.SortStableFunc(out, func(a, b entity.Record) int {
		c := compareBy(a, b, by)
		if dir == entity.DESC {
			return -c
		}

		return c
	})

	return out
}

func compareBy(a, b entity.Record, by entity.SortField) int {
	if by == entity.SortByAmount {
		return a.Fields.Amount.Cmp(b.Fields.Amount)
	}

	return cmp.Compare(sortKey(a, by), sortKey(b, by))
}

func sortKey(r entity.Record, by entity.SortField) string {
	switch by {
	case entity.SortByRegNo:
		return r.Fields.RegNo
	case entity.SortByOpDate:
		return r.Fields.OpDate
	case entity.SortByIPNo:
		return r.Fields.IPNo
	case entity.SortByName:
		return r.Fields.Name
	case entity.SortByMode:
		return r.Fields.Mode.String()
	case entity.SortByReceiptDate:
		return r.Fields.ReceiptDate
	case entity.SortByTxnNo:
		return r.Fields.TxnNo
	case entity.SortByBillClosed:
		return r.Fields.BillClosed
	case entity.SortByCreated:
		return r.Created
	default:
		return ""
	}
}

// Summarize computes the dashboard aggregates over the full record list.
func Summarize(records []entity.Record) entity.Stats {
	s := entity.Stats{
		Total:        len(records),
		TotalAmount:  decimal.Zero,
		OpenAmount:   decimal.Zero,
		ClosedAmount: decimal.Zero,
		ByMode:       make(map[entity.PaymentMode]entity.ModeTotal),
		AmountTrend:  make([]decimal.Decimal, 0, len(records)),
	}

	for _, r := range records {
		amount := r.Fields.Amount

		s.TotalAmount = s.TotalAmount.Add(amount)

		if r.IsOpen() {
			s.Open++
			s.OpenAmount = s.OpenAmount.Add(amount)
		} else {
			s.Closed++
			s.ClosedAmount = s.ClosedAmount.Add(amount)
		}

		mt, ok := s.ByMode[r.Fields.Mode]
		if !ok {
			mt.Amount = decimal.Zero
		}

		mt.Count++
		mt.Amount = mt.Amount.Add(amount)
		s.ByMode[r.Fields.Mode] = mt

		s.AmountTrend = append(s.AmountTrend, amount)
	}

	recent := Sort(records, entity.SortByCreated, entity.DESC)
	s.Recent = recent[:min(RecentLimit, len(recent))]

	return s
}

// Total sums the amounts of records.
func Total(records []entity.Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Fields.Amount)
	}

	return sum
}

// Compute builds the complete view of records for q: the filtered and sorted
// rows, their total, and the aggregates of the unfiltered list.
func Compute(records []entity.Record, q entity.ViewQuery) entity.View {
	rows := Apply(records, q)

	return entity.View{
		Records:        rows,
		FilteredAmount: Total(rows),
		Stats:          Summarize(records),
	}
}

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
)

const maxColWidth = 30

func newTable(rightAligned ...int) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Wrap = true

	for _, col := range rightAligned {
		table.RightAlign(col)
	}

	return table
}

func renderRecords(w io.Writer, s dashboard.State) error {
	v := s.View()

	if len(v.Records) == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}

	table := newTable(3)
	table.AddRow("ID", "Reg No", "Patient", "Amount", "Mode", "Txn No", "Receipt", "OP Visit", "IP No", "Status")

	for _, r := range v.Records {
		f := r.Fields
		table.AddRow(r.ID, f.RegNo, f.Name, dashboard.FormatAmount(f.Amount), f.Mode, dash(f.TxnNo),
			dashboard.FormatDate(f.ReceiptDate), dashboard.FormatDate(f.OpDate), dash(f.IPNo), status(r))
	}

	_, err := fmt.Fprintf(w, "%s\n\n%s of %s records, %s\n",
		table,
		humanize.Comma(int64(len(v.Records))),
		humanize.Comma(int64(v.Stats.Total)),
		dashboard.FormatAmount(v.FilteredAmount),
	)

	return err
}

func renderStats(w io.Writer, st entity.Stats, now time.Time) error {
	totals := newTable(1, 2)
	totals.AddRow("", "Records", "Amount")
	totals.AddRow("Total", humanize.Comma(int64(st.Total)), dashboard.FormatAmount(st.TotalAmount))
	totals.AddRow("Open", humanize.Comma(int64(st.Open)), dashboard.FormatAmount(st.OpenAmount))
	totals.AddRow("Closed", humanize.Comma(int64(st.Closed)), dashboard.FormatAmount(st.ClosedAmount))

	modes := newTable(1, 2)
	modes.AddRow("Mode", "Records", "Amount")

	for _, m := range sortedModes(st.ByMode) {
		t := st.ByMode[m]
		modes.AddRow(m, humanize.Comma(int64(t.Count)), dashboard.FormatAmount(t.Amount))
	}

	recent := newTable(2)
	recent.AddRow("Patient", "Reg No", "Amount", "Added")

	for _, r := range st.Recent {
		recent.AddRow(r.Fields.Name, r.Fields.RegNo, dashboard.FormatAmount(r.Fields.Amount), added(r.Created, now))
	}

	_, err := fmt.Fprintf(w, "%s\n\nBy payment mode\n%s\n\nRecent entries\n%s\n", totals, modes, recent)

	return err
}

// renderProblems prints whole messages; the table has no width cap.
func renderProblems(w io.Writer, problems map[string]string) {
	table := uitable.New()

	for _, field := range slices.Sorted(maps.Keys(problems)) {
		table.AddRow(field, problems[field])
	}

	fmt.Fprintf(w, "Validation failed\n%s\n", table)
}

// sortedModes lists the known modes first in their usual order, then any
// other mode found in the data.
func sortedModes(byMode map[entity.PaymentMode]entity.ModeTotal) []entity.PaymentMode {
	out := make([]entity.PaymentMode, 0, len(byMode))

	for _, m := range entity.PaymentModes {
		if _, ok := byMode[m]; ok {
			out = append(out, m)
		}
	}

	var rest []entity.PaymentMode

	for m := range byMode {
		if !slices.Contains(entity.PaymentModes, m) {
			rest = append(rest, m)
		}
	}

	slices.Sort(rest)

	return append(out, rest...)
}

func added(created string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return dash(created)
	}

	return humanize.RelTime(t, now, "ago", "from now")
}

func status(r entity.Record) string {
	if r.IsOpen() {
		return "Open"
	}

	return "Closed " + dashboard.FormatDate(r.Fields.BillClosed)
}

func dash(s string) string {
	if s == "" {
		return "—"
	}

	return s
}

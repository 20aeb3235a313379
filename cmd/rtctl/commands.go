package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
)

const msgExported = "CSV exported!"

func newLoginCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials and show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), o)
			if err != nil {
				return err
			}

			u := s.state.User
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s, %s)\n", u.Name, u.Username, u.Role)

			return nil
		},
	}
}

// viewFlags are the table filters shared by list, stats and export.
type viewFlags struct {
	search string
	mode   string
	status string
	sort   string
	dir    string
}

func (v *viewFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&v.search, "search", "s", "", "search name, registration number, IP number or amount")
	f.StringVar(&v.mode, "mode", "All", "payment mode filter")
	f.StringVar(&v.status, "status", entity.StatusAll.String(), "bill status filter: All, Open or Closed")
	f.StringVar(&v.sort, "sort", "", "sort field")
	f.StringVar(&v.dir, "dir", "", "sort direction: asc or desc")
}

// apply drives the flags through the reducer the way the dashboard controls do.
func (v *viewFlags) apply(s *session) error {
	s.dispatch(dashboard.SearchChanged{Search: v.search})

	mode := entity.PaymentMode(v.mode)
	if v.mode == "All" {
		mode = ""
	}

	s.dispatch(dashboard.ModeFilterChanged{Mode: mode})
	s.dispatch(dashboard.StatusFilterChanged{Status: entity.StatusFilter(v.status)})

	if field := entity.SortField(v.sort); field != "" && field != s.state.Query.SortBy {
		s.dispatch(dashboard.SortToggled{Field: field})
	}

	dir := entity.SortDir(v.dir)
	if dir != "" && !dir.IsValid() {
		return fmt.Errorf("%w: unknown sort direction %q", entity.ErrInvalidArgument, v.dir)
	}

	if dir != "" && dir != s.state.Query.Dir {
		s.dispatch(dashboard.SortToggled{Field: s.state.Query.SortBy})
	}

	return s.state.Query.Validate()
}

func newListCmd(o *options) *cobra.Command {
	var v viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the records table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), o)
			if err != nil {
				return err
			}

			err = v.apply(s)
			if err != nil {
				return err
			}

			err = s.load(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(cmd.OutOrStdout(), s.state)
		},
	}

	v.register(cmd)

	return cmd
}

func newStatsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), o)
			if err != nil {
				return err
			}

			err = s.load(cmd.Context())
			if err != nil {
				return err
			}

			return renderStats(cmd.OutOrStdout(), s.state.View().Stats, o.now())
		},
	}

	return cmd
}

// recordFlags holds the entry form fields.
type recordFlags struct {
	regNo       string
	opDate      string
	ipNo        string
	name        string
	amount      string
	mode        string
	receiptDate string
	txnNo       string
	billClosed  string
}

func (r *recordFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&r.regNo, "reg-no", "", "registration number")
	f.StringVar(&r.opDate, "op-date", "", "OP visit date (YYYY-MM-DD)")
	f.StringVar(&r.ipNo, "ip-no", "", "IP number")
	f.StringVar(&r.name, "name", "", "patient name")
	f.StringVar(&r.amount, "amount", "", "advance amount")
	f.StringVar(&r.mode, "mode", "", "payment mode: "+modeList())
	f.StringVar(&r.receiptDate, "receipt-date", "", "date of receipt (YYYY-MM-DD)")
	f.StringVar(&r.txnNo, "txn-no", "", "transaction number, not needed for Cash")
	f.StringVar(&r.billClosed, "bill-closed", "", "bill closed date (YYYY-MM-DD)")
}

func (r *recordFlags) fields() entity.Fields {
	return entity.Fields{
		RegNo:       r.regNo,
		OpDate:      r.opDate,
		IPNo:        r.ipNo,
		Name:        r.name,
		Amount:      entity.ParseAmountString(r.amount),
		Mode:        entity.PaymentMode(r.mode),
		ReceiptDate: r.receiptDate,
		TxnNo:       r.txnNo,
		BillClosed:  r.billClosed,
	}
}

// patch keeps only the flags given on the command line.
func (r *recordFlags) patch(cmd *cobra.Command) entity.Patch {
	var p entity.Patch

	changed := cmd.Flags().Changed

	if changed("reg-no") {
		p.RegNo = entity.Some(r.regNo)
	}

	if changed("op-date") {
		p.OpDate = entity.Some(r.opDate)
	}

	if changed("ip-no") {
		p.IPNo = entity.Some(r.ipNo)
	}

	if changed("name") {
		p.Name = entity.Some(r.name)
	}

	if changed("amount") {
		p.Amount = entity.Some(entity.ParseAmountString(r.amount))
	}

	if changed("mode") {
		p.Mode = entity.Some(entity.PaymentMode(r.mode))
	}

	if changed("receipt-date") {
		p.ReceiptDate = entity.Some(r.receiptDate)
	}

	if changed("txn-no") {
		p.TxnNo = entity.Some(r.txnNo)
	}

	if changed("bill-closed") {
		p.BillClosed = entity.Some(r.billClosed)
	}

	return p
}

func newAddCmd(o *options) *cobra.Command {
	var r recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an advance payment record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			if r.billClosed != "" && !s.state.CanSetBillClosedOnCreate() {
				return fmt.Errorf("%w: bill closed date on a new record", errAdminOnly)
			}

			fields := r.fields()

			problems, err := s.client.Validate(ctx, fields)
			if err != nil {
				return s.fail(err, dashboard.MsgAddFailed)
			}

			if len(problems) != 0 {
				renderProblems(out, problems)
				return errors.New("validation failed")
			}

			rec, err := s.client.Create(ctx, fields)
			if err != nil {
				return s.fail(err, dashboard.MsgAddFailed)
			}

			s.dispatch(dashboard.RecordAdded{Record: rec})
			fmt.Fprintf(out, "%s (%s)\n", s.state.Notice.Message, rec.ID)

			return nil
		},
	}

	r.register(cmd)

	return cmd
}

func newEditCmd(o *options) *cobra.Command {
	var r recordFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a record (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			if !s.state.CanEdit() {
				return fmt.Errorf("%w: edit records", errAdminOnly)
			}

			p := r.patch(cmd)
			if p.IsEmpty() {
				return errors.New("nothing to change")
			}

			err = s.load(ctx)
			if err != nil {
				return err
			}

			cur, err := s.find(args[0])
			if err != nil {
				return err
			}

			// The stored record must still pass the entry form rules once patched.
			problems, err := s.client.Validate(ctx, p.Apply(cur.Fields))
			if err != nil {
				return s.fail(err, dashboard.MsgUpdateFailed)
			}

			if len(problems) != 0 {
				renderProblems(cmd.OutOrStdout(), problems)
				return errors.New("validation failed")
			}

			rec, err := s.client.Update(ctx, cur.ID, p)
			if err != nil {
				return s.fail(err, dashboard.MsgUpdateFailed)
			}

			s.dispatch(dashboard.RecordUpdated{Record: rec})
			fmt.Fprintln(cmd.OutOrStdout(), s.state.Notice.Message)

			return nil
		},
	}

	r.register(cmd)

	return cmd
}

func newCloseCmd(o *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "close ID",
		Short: "Close the bill of an open record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			err = s.load(ctx)
			if err != nil {
				return err
			}

			cur, err := s.find(args[0])
			if err != nil {
				return err
			}

			if !s.state.CanCloseBill(cur) {
				return fmt.Errorf("bill of %s is already closed on %s", cur.ID, cur.Fields.BillClosed)
			}

			if date == "" {
				date = o.now().Format(entity.DateLayout)
			}

			rec, err := s.client.CloseBill(ctx, cur.ID, date)
			if err != nil {
				return s.fail(err, dashboard.MsgCloseFailed)
			}

			s.dispatch(dashboard.BillClosed{Record: rec})
			fmt.Fprintln(cmd.OutOrStdout(), s.state.Notice.Message)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "bill closed date (YYYY-MM-DD), defaults to today")

	return cmd
}

func newDeleteCmd(o *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			if !s.state.CanDelete() {
				return fmt.Errorf("%w: delete records", errAdminOnly)
			}

			if !yes {
				return errors.New("delete this record? pass --yes to confirm")
			}

			err = s.client.Delete(ctx, args[0])
			if err != nil {
				return s.fail(err, dashboard.MsgDeleteFailed)
			}

			s.dispatch(dashboard.RecordDeleted{ID: args[0]})
			fmt.Fprintln(cmd.OutOrStdout(), s.state.Notice.Message)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	return cmd
}

func newExportCmd(o *options) *cobra.Command {
	var (
		v    viewFlags
		path string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			err = v.apply(s)
			if err != nil {
				return err
			}

			if path == "" {
				path = dashboard.ExportFileName(o.now())
			}

			var buf bytes.Buffer

			err = s.client.Export(ctx, s.state.Query, &buf)
			if err != nil {
				return s.fail(err, dashboard.MsgLoadFailed)
			}

			// The file is only written once the whole export has arrived.
			err = os.WriteFile(path, buf.Bytes(), 0o644) //nolint:gosec
			if err != nil {
				return fmt.Errorf("write file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", msgExported, path)

			return nil
		},
	}

	v.register(cmd)
	cmd.Flags().StringVarP(&path, "output", "o", "", "output file, defaults to rt_advances_<date>.csv")

	return cmd
}

func newReceiptCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt ID",
		Short: "Print the advance receipt of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o)
			if err != nil {
				return err
			}

			err = s.load(ctx)
			if err != nil {
				return err
			}

			rec, err := s.find(args[0])
			if err != nil {
				return err
			}

			return dashboard.WriteReceipt(cmd.OutOrStdout(), rec, o.now())
		},
	}
}

func modeList() string {
	modes := make([]string, 0, len(entity.PaymentModes))
	for _, m := range entity.PaymentModes {
		modes = append(modes, m.String())
	}

	return strings.Join(modes, ", ")
}

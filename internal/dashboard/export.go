package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/samandr77/microservices/advances/internal/entity"
)

var csvHeader = []string{
	"Registration Number",
	"OP Visit Date",
	"IP Number",
	"Patient Name",
	"Amount",
	"Mode",
	"Transaction Number",
	"Date of Receipt",
	"Bill Closed Date",
}

// ExportFileName is the download name of an export made on day.
func ExportFileName(day time.Time) string {
	return "rt_advances_" + day.Format(entity.DateLayout) + ".csv"
}

// WriteCSV writes records in the given order with a header row.
func WriteCSV(w io.Writer, records []entity.Record) error {
	cw := csv.NewWriter(w)

	err := cw.Write(csvHeader)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		f := r.Fields

		err = cw.Write([]string{
			f.RegNo,
			f.OpDate,
			f.IPNo,
			f.Name,
			f.Amount.String(),
			f.Mode.String(),
			f.TxnNo,
			f.ReceiptDate,
			f.BillClosed,
		})
		if err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

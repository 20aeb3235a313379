package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samandr77/microservices/advances/internal/entity"
)

const receiptWidth = 44

// WriteReceipt prints a plain text advance receipt for r.
func WriteReceipt(w io.Writer, r entity.Record, generated time.Time) error {
	f := r.Fields
	rule := strings.Repeat("=", receiptWidth)

	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(center("RADIOTHERAPY ADVANCE RECEIPT") + "\n")
	b.WriteString(center("Patient Advance Payment Record") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(center(f.RegNo) + "\n\n")

	line(&b, "Patient Name", f.Name)
	line(&b, "IP Number", f.IPNo)
	line(&b, "OP Visit Date", FormatDate(f.OpDate))
	line(&b, "Payment Mode", f.Mode.String())

	if f.TxnNo != "" {
		line(&b, "Transaction Number", f.TxnNo)
	}

	b.WriteString("\n" + center(FormatAmount(f.Amount)) + "\n\n")

	line(&b, "Receipt Date", FormatDate(f.ReceiptDate))

	if r.IsOpen() {
		line(&b, "Bill Status", "Open")
		b.WriteString("\n" + center("BILL OPEN - Advance Pending Settlement") + "\n")
	} else {
		line(&b, "Bill Status", "Closed")
		b.WriteString("\n" + center("BILL CLOSED - "+FormatDate(f.BillClosed)) + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("Generated: " + generated.Format("02/01/2006, 15:04:05") + "\n")
	b.WriteString("Computer-generated receipt. No signature required\n")

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	return nil
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-20s %s\n", label+":", value)
}

func center(s string) string {
	n := len([]rune(s))
	if n >= receiptWidth {
		return s
	}

	return strings.Repeat(" ", (receiptWidth-n)/2) + s
}

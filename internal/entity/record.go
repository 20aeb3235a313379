package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "Cash"
	PaymentModeGPay    PaymentMode = "GPay"
	PaymentModePhonePe PaymentMode = "PhonePe"
	PaymentModeCard    PaymentMode = "Card"
	PaymentModeNEFT    PaymentMode = "NEFT"
	PaymentModeCheque  PaymentMode = "Cheque"
	PaymentModeUPI     PaymentMode = "UPI"
	PaymentModeOther   PaymentMode = "Other"
)

// PaymentModes lists the accepted modes in display order.
var PaymentModes = []PaymentMode{
	PaymentModeCash,
	PaymentModeGPay,
	PaymentModePhonePe,
	PaymentModeCard,
	PaymentModeNEFT,
	PaymentModeCheque,
	PaymentModeUPI,
	PaymentModeOther,
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) Validate() error {
	for _, v := range PaymentModes {
		if v == m {
			return nil
		}
	}

	return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidArgument, m)
}

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// Fields is the editable part of an advance payment record. Empty date
// strings mean the date is absent.
type Fields struct {
	RegNo       string
	OpDate      string
	IPNo        string
	Name        string
	Amount      decimal.Decimal
	Mode        PaymentMode
	ReceiptDate string
	TxnNo       string
	BillClosed  string
}

// IsOpen reports whether the advance has not been reconciled against a final bill yet.
func (f Fields) IsOpen() bool {
	return f.BillClosed == ""
}

type Record struct {
	ID      string `json:"id"`
	Fields  Fields `json:"fields"`
	Created string `json:"created"` // ISO-8601, assigned by the remote store
}

func (r Record) IsOpen() bool {
	return r.Fields.IsOpen()
}

// Optional distinguishes a field that was explicitly set, possibly to its
// zero value, from a field that was left out.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Patch is a sparse update. Only fields with Set are sent to the store.
type Patch struct {
	RegNo       Optional[string]
	OpDate      Optional[string]
	IPNo        Optional[string]
	Name        Optional[string]
	Amount      Optional[decimal.Decimal]
	Mode        Optional[PaymentMode]
	ReceiptDate Optional[string]
	TxnNo       Optional[string]
	BillClosed  Optional[string]
}

func (p Patch) IsEmpty() bool {
	return !p.RegNo.Set && !p.OpDate.Set && !p.IPNo.Set && !p.Name.Set && !p.Amount.Set &&
		!p.Mode.Set && !p.ReceiptDate.Set && !p.TxnNo.Set && !p.BillClosed.Set
}

// Apply returns f with every set field of p written over it.
func (p Patch) Apply(f Fields) Fields {
	if p.RegNo.Set {
		f.RegNo = p.RegNo.Value
	}

	if p.OpDate.Set {
		f.OpDate = p.OpDate.Value
	}

	if p.IPNo.Set {
		f.IPNo = p.IPNo.Value
	}

	if p.Name.Set {
		f.Name = p.Name.Value
	}

	if p.Amount.Set {
		f.Amount = p.Amount.Value
	}

	if p.Mode.Set {
		f.Mode = p.Mode.Value
	}

	if p.ReceiptDate.Set {
		f.ReceiptDate = p.ReceiptDate.Value
	}

	if p.TxnNo.Set {
		f.TxnNo = p.TxnNo.Value
	}

	if p.BillClosed.Set {
		f.BillClosed = p.BillClosed.Value
	}

	return f
}

// CloseBillPatch closes the bill on the given date and touches nothing else.
func CloseBillPatch(date string) Patch {
	return Patch{BillClosed: Some(date)}
}

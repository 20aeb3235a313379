package entity

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Internal field names used by the dashboard and the gateway API.
const (
	KeyRegNo       = "regNo"
	KeyOpDate      = "opDate"
	KeyIPNo        = "ipNo"
	KeyName        = "name"
	KeyAmount      = "amount"
	KeyMode        = "mode"
	KeyReceiptDate = "receiptDate"
	KeyTxnNo       = "txnNo"
	KeyBillClosed  = "billClosed"
)

type fieldsJSON struct {
	RegNo       string      `json:"regNo"`
	OpDate      string      `json:"opDate"`
	IPNo        string      `json:"ipNo"`
	Name        string      `json:"name"`
	Amount      json.Number `json:"amount"`
	Mode        string      `json:"mode"`
	ReceiptDate string      `json:"receiptDate"`
	TxnNo       string      `json:"txnNo"`
	BillClosed  string      `json:"billClosed"`
}

func (f Fields) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldsJSON{
		RegNo:       f.RegNo,
		OpDate:      f.OpDate,
		IPNo:        f.IPNo,
		Name:        f.Name,
		Amount:      json.Number(f.Amount.String()),
		Mode:        f.Mode.String(),
		ReceiptDate: f.ReceiptDate,
		TxnNo:       f.TxnNo,
		BillClosed:  f.BillClosed,
	})
}

// UnmarshalJSON is lenient: missing or null values become empty strings and
// an amount that does not parse becomes zero.
func (f *Fields) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	*f = Fields{
		RegNo:       rawString(raw[KeyRegNo]),
		OpDate:      rawString(raw[KeyOpDate]),
		IPNo:        rawString(raw[KeyIPNo]),
		Name:        rawString(raw[KeyName]),
		Amount:      ParseAmount(raw[KeyAmount]),
		Mode:        PaymentMode(rawString(raw[KeyMode])),
		ReceiptDate: rawString(raw[KeyReceiptDate]),
		TxnNo:       rawString(raw[KeyTxnNo]),
		BillClosed:  rawString(raw[KeyBillClosed]),
	}

	return nil
}

func (p Patch) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)

	setString(m, KeyRegNo, p.RegNo)
	setString(m, KeyOpDate, p.OpDate)
	setString(m, KeyIPNo, p.IPNo)
	setString(m, KeyName, p.Name)

	if p.Amount.Set {
		m[KeyAmount] = json.Number(p.Amount.Value.String())
	}

	if p.Mode.Set {
		m[KeyMode] = p.Mode.Value.String()
	}

	setString(m, KeyReceiptDate, p.ReceiptDate)
	setString(m, KeyTxnNo, p.TxnNo)
	setString(m, KeyBillClosed, p.BillClosed)

	return json.Marshal(m)
}

// UnmarshalJSON marks a field as set whenever its key is present, including
// keys holding null or an empty string.
func (p *Patch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	*p = Patch{
		RegNo:       optionalString(raw, KeyRegNo),
		OpDate:      optionalString(raw, KeyOpDate),
		IPNo:        optionalString(raw, KeyIPNo),
		Name:        optionalString(raw, KeyName),
		ReceiptDate: optionalString(raw, KeyReceiptDate),
		TxnNo:       optionalString(raw, KeyTxnNo),
		BillClosed:  optionalString(raw, KeyBillClosed),
	}

	if v, ok := raw[KeyAmount]; ok {
		p.Amount = Some(ParseAmount(v))
	}

	if v, ok := raw[KeyMode]; ok {
		p.Mode = Some(PaymentMode(rawString(v)))
	}

	return nil
}

func setString(m map[string]any, key string, v Optional[string]) {
	if v.Set {
		m[key] = v.Value
	}
}

func optionalString(raw map[string]json.RawMessage, key string) Optional[string] {
	v, ok := raw[key]
	if !ok {
		return Optional[string]{}
	}

	return Some(rawString(v))
}

// rawString returns a JSON string value, the literal text of a JSON number,
// or an empty string for anything else.
func rawString(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}

	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}

	return ""
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads an amount sent either as a JSON number or as a string.
// A string is read up to the first character that cannot continue a number,
// so "1500.50 INR" is 1500.50. Anything unparsable is zero.
func ParseAmount(v json.RawMessage) decimal.Decimal {
	return ParseAmountString(rawString(v))
}

func ParseAmountString(s string) decimal.Decimal {
	num := leadingNumber.FindString(strings.TrimSpace(s))
	if num == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}

	return d
}

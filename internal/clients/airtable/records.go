package airtable

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/advances/internal/entity"
)

// Column names of the records table.
const (
	ColRegNo       = "Registration Number"
	ColOpDate      = "OP Visit Date"
	ColIPNo        = "IP Number"
	ColName        = "Patient Name"
	ColAmount      = "Amounts"
	ColMode        = "Mode of Receipt"
	ColReceiptDate = "Date of receipt"
	ColTxnNo       = "Transaction Number"
	ColBillClosed  = "Bill Closed Date"
)

// RecordsGateway maps advance payment records onto the records table.
type RecordsGateway struct {
	t *Table
}

func NewRecordsGateway(c *Client, tableID string) *RecordsGateway {
	return &RecordsGateway{t: c.Table(tableID)}
}

func (g *RecordsGateway) List(ctx context.Context) ([]entity.Record, error) {
	remote, err := g.t.All(ctx, Query{})
	if err != nil {
		return nil, err
	}

	records := make([]entity.Record, 0, len(remote))
	for _, r := range remote {
		records = append(records, RecordFromRemote(r))
	}

	return records, nil
}

func (g *RecordsGateway) Create(ctx context.Context, f entity.Fields) (entity.Record, error) {
	rec, err := g.t.Create(ctx, CreateFieldsToRemote(f))
	if err != nil {
		return entity.Record{}, err
	}

	return RecordFromRemote(rec), nil
}

func (g *RecordsGateway) Update(ctx context.Context, id string, p entity.Patch) (entity.Record, error) {
	rec, err := g.t.Update(ctx, id, PatchToRemote(p))
	if err != nil {
		return entity.Record{}, err
	}

	return RecordFromRemote(rec), nil
}

func (g *RecordsGateway) Delete(ctx context.Context, id string) error {
	return g.t.Delete(ctx, id)
}

// RecordFromRemote maps a remote row. Missing columns become empty strings
// and a missing amount becomes zero.
func RecordFromRemote(r RemoteRecord) entity.Record {
	return entity.Record{
		ID: r.ID,
		Fields: entity.Fields{
			RegNo:       stringField(r.Fields, ColRegNo),
			OpDate:      stringField(r.Fields, ColOpDate),
			IPNo:        stringField(r.Fields, ColIPNo),
			Name:        stringField(r.Fields, ColName),
			Amount:      amountField(r.Fields, ColAmount),
			Mode:        entity.PaymentMode(stringField(r.Fields, ColMode)),
			ReceiptDate: stringField(r.Fields, ColReceiptDate),
			TxnNo:       stringField(r.Fields, ColTxnNo),
			BillClosed:  stringField(r.Fields, ColBillClosed),
		},
		Created: r.CreatedTime,
	}
}

// CreateFieldsToRemote maps a full field set. Empty dates are sent as null
// because date columns reject empty strings.
func CreateFieldsToRemote(f entity.Fields) map[string]any {
	return map[string]any{
		ColRegNo:       f.RegNo,
		ColOpDate:      nullableDate(f.OpDate),
		ColIPNo:        f.IPNo,
		ColName:        f.Name,
		ColAmount:      amountValue(f.Amount),
		ColMode:        f.Mode.String(),
		ColReceiptDate: nullableDate(f.ReceiptDate),
		ColTxnNo:       f.TxnNo,
		ColBillClosed:  nullableDate(f.BillClosed),
	}
}

// PatchToRemote maps only the fields that are set. An empty TxnNo stays an
// empty string so that it clears the column; an empty mode is sent as null
// because the single-select column does not accept an empty string.
func PatchToRemote(p entity.Patch) map[string]any {
	m := make(map[string]any)

	if p.RegNo.Set {
		m[ColRegNo] = p.RegNo.Value
	}

	if p.OpDate.Set {
		m[ColOpDate] = nullableDate(p.OpDate.Value)
	}

	if p.IPNo.Set {
		m[ColIPNo] = p.IPNo.Value
	}

	if p.Name.Set {
		m[ColName] = p.Name.Value
	}

	if p.Amount.Set {
		m[ColAmount] = amountValue(p.Amount.Value)
	}

	if p.Mode.Set {
		m[ColMode] = nullableChoice(p.Mode.Value)
	}

	if p.ReceiptDate.Set {
		m[ColReceiptDate] = nullableDate(p.ReceiptDate.Value)
	}

	if p.TxnNo.Set {
		m[ColTxnNo] = p.TxnNo.Value
	}

	if p.BillClosed.Set {
		m[ColBillClosed] = nullableDate(p.BillClosed.Value)
	}

	return m
}

func nullableDate(v string) any {
	if v == "" {
		return nil
	}

	return v
}

func nullableChoice(m entity.PaymentMode) any {
	if m == "" {
		return nil
	}

	return m.String()
}

func amountValue(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func stringField(fields map[string]any, col string) string {
	switch v := fields[col].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func amountField(fields map[string]any, col string) decimal.Decimal {
	switch v := fields[col].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}

		return d
	case string:
		return entity.ParseAmountString(v)
	default:
		return decimal.Zero
	}
}

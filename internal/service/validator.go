package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/advances/internal/entity"
)

type recordForm struct {
	RegNo       string          `json:"regNo" validate:"required"`
	OpDate      string          `json:"opDate" validate:"required,datetime=2006-01-02"`
	IPNo        string          `json:"ipNo"`
	Name        string          `json:"name" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Mode        string          `json:"mode" validate:"required,oneof=Cash GPay PhonePe Card NEFT Cheque UPI Other"`
	ReceiptDate string          `json:"receiptDate" validate:"required,datetime=2006-01-02"`
	TxnNo       string          `json:"txnNo" validate:"required_unless=Mode Cash"`
	BillClosed  string          `json:"billClosed" validate:"omitempty,datetime=2006-01-02"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}

		return d.InexactFloat64()
	}, decimal.Decimal{})

	return v
}

// ValidateRecordForm checks a new or edited record against the entry form
// rules. Text fields are trimmed before checking. The returned error is an
// *entity.ValidationError keyed by field name.
func (s *Service) ValidateRecordForm(f entity.Fields) error {
	return s.validateStruct(recordForm{
		RegNo:       strings.TrimSpace(f.RegNo),
		OpDate:      f.OpDate,
		IPNo:        strings.TrimSpace(f.IPNo),
		Name:        strings.TrimSpace(f.Name),
		Amount:      f.Amount,
		Mode:        f.Mode.String(),
		ReceiptDate: f.ReceiptDate,
		TxnNo:       strings.TrimSpace(f.TxnNo),
		BillClosed:  f.BillClosed,
	})
}

func (s *Service) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = message(fe)
	}

	return &entity.ValidationError{Fields: fields}
}

func messageFor(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return message(fieldErrs[0])
	}

	return err.Error()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_unless":
		return "is required unless mode is Cash"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gt":
		return "must be greater than zero"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/samandr77/microservices/advances/internal/entity"
)

const (
	displayDateLayout = "02 Jan 2006"
	noDate            = "—"
)

var indianEnglish = language.MustParse("en-IN")

// FormatAmount renders d in rupees with Indian digit grouping.
func FormatAmount(d decimal.Decimal) string {
	p := message.NewPrinter(indianEnglish)

	return "₹" + p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// FormatDate renders a YYYY-MM-DD date as "02 Apr 2024". Empty dates become a
// dash and unparsable ones are returned as is.
func FormatDate(s string) string {
	if s == "" {
		return noDate
	}

	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return s
	}

	return t.Format(displayDateLayout)
}

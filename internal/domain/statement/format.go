package statement

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"paystub/internal/domain/paystub"
)

const dateLayout = "01/02/2006"

// RoundCents rounds half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders v with en-US grouping and exactly two decimals, e.g. "1,117.44".
func FormatMoney(v float64) string {
	r := RoundCents(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%.2f", r)
}

func FormatHours(h float64) string {
	return FormatMoney(h)
}

// FormatDate renders d as MM/DD/YYYY; the zero date renders empty.
func FormatDate(d paystub.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

package handover

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dongSign = "₫"

var (
	vnd        = currency.MustParseISO("VND")
	vndPrinter = message.NewPrinter(language.Vietnamese)
)

// FormatVND renders an amount in dong with Vietnamese digit grouping and no
// decimals, e.g. "150.000 ₫".
func FormatVND(amount float64) string {
	scale, _ := currency.Standard.Rounding(vnd)
	return vndPrinter.Sprint(number.Decimal(amount, number.Scale(scale))) + " " + dongSign
}

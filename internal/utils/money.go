package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount in minor units (cents) as a display string
// with thousand separators, e.g. 123456 USD -> "1,234.56 USD".
func FormatPrice(minor int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}

	amount := MajorUnits(minor).StringFixed(2)

	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign = "-"
		amount = amount[1:]
	}

	whole, frac, _ := strings.Cut(amount, ".")

	var result strings.Builder
	length := len(whole)
	for i, digit := range whole {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return sign + result.String() + "." + frac + " " + currency
}

// MajorUnits converts minor units to a decimal amount in major units.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatLira formats an amount the Turkish way with a plain "TL" suffix,
// e.g. 15000.5 -> "15.000,50 TL". The PDF core fonts have no lira sign.
func FormatLira(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := strings.Join(groups, ".") + "," + decimalPart + " TL"
	if neg {
		out = "-" + out
	}
	return out
}

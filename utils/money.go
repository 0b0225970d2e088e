package utils

import "github.com/shopspring/decimal"

// TaxRate is applied to the subtotal of every order.
var TaxRate = decimal.NewFromFloat(0.10)

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// LineSubtotal is price * quantity rounded to cents.
func LineSubtotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// Totals sums line subtotals and derives tax and total.
func Totals(lines []float64) (subtotal, tax, total float64) {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l))
	}
	sum = sum.Round(2)
	t := sum.Mul(TaxRate).Round(2)
	return sum.InexactFloat64(), t.InexactFloat64(), sum.Add(t).InexactFloat64()
}

// Sum adds amounts with decimal precision.
func Sum(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Round(2).InexactFloat64()
}

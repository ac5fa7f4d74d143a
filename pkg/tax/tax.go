// Package tax holds the fixed Lagos hospitality tax rules applied to
// receipts, restaurant bills and invoices.
package tax

import "github.com/shopspring/decimal"

// VATNumber is printed on every tax-inclusive document.
const VATNumber = "VIVI4002500868"

// DefaultServiceChargeRate is used when no rate is configured.
const DefaultServiceChargeRate = 0.10

var (
	VATRate            = decimal.RequireFromString("0.075")
	ConsumptionTaxRate = decimal.RequireFromString("0.05")
)

// Breakdown is the result of applying tax to a subtotal.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	VAT            float64 `json:"vatAmount"`
	ConsumptionTax float64 `json:"consumptionTaxAmount"`
	TotalWithTax   float64 `json:"totalWithTax"`
}

// Compute applies VAT and consumption tax to subtotal. Each component is
// rounded to 2 dp; the total is rounded from the unrounded components.
func Compute(subtotal float64) Breakdown {
	sub := decimal.NewFromFloat(subtotal)
	vat := sub.Mul(VATRate)
	ct := sub.Mul(ConsumptionTaxRate)

	return Breakdown{
		Subtotal:       subtotal,
		VAT:            toFloat(vat.Round(2)),
		ConsumptionTax: toFloat(ct.Round(2)),
		TotalWithTax:   toFloat(sub.Add(vat).Add(ct).Round(2)),
	}
}

// ServiceCharge returns round2(subtotal * rate).
func ServiceCharge(subtotal, rate float64) float64 {
	return toFloat(decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(rate)).Round(2))
}

// Round2 rounds to currency precision, half away from zero.
func Round2(v float64) float64 {
	return toFloat(decimal.NewFromFloat(v).Round(2))
}

// Sum adds amounts without float drift and rounds the result to 2 dp.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return toFloat(total.Round(2))
}

// Sub returns round2(a - b).
func Sub(a, b float64) float64 {
	return toFloat(decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2))
}

// Mul returns round2(a * b).
func Mul(a, b float64) float64 {
	return toFloat(decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(2))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

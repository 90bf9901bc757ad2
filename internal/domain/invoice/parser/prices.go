package parser

import (
	"github.com/shopspring/decimal"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

var (
	one          = decimal.NewFromInt(1)
	relTolerance = decimal.RequireFromString("0.001")
	minTolerance = decimal.RequireFromString("0.05")
)

// reconstructPrices recovers the unit and total price from the numbers
// that follow the header match. Extracted text has no reliable column
// boundaries, so instead of parsing positions it searches for the pair
// (a, b) with a before b and a <= b whose product a*qty best matches b.
//
// A pair is accepted when |a*qty - b| < max(0.001*max(1,b), 0.05). Among
// accepted pairs the smallest error wins; ties go to the larger total.
// Returns nil pair when quantity is absent, non-positive, or no pair
// satisfies the tolerance.
func reconstructPrices(quantityText, rest string) (unitPrice, totalPrice *decimal.Decimal) {
	if quantityText == "" {
		return nil, nil
	}
	qty, err := normalizer.ParseLocaleDecimal(quantityText)
	if err != nil || !qty.IsPositive() {
		return nil, nil
	}

	tokens := numberRe.FindAllString(rest, -1)
	values := make([]decimal.Decimal, 0, len(tokens))
	for _, tok := range tokens {
		if d, err := normalizer.ParseLocaleDecimal(tok); err == nil {
			values = append(values, d)
		}
	}

	var (
		found     bool
		bestErr   decimal.Decimal
		bestUnit  decimal.Decimal
		bestTotal decimal.Decimal
	)
	for i := 0; i < len(values); i++ {
		a := values[i]
		if !a.IsPositive() {
			continue
		}
		for j := i + 1; j < len(values); j++ {
			b := values[j]
			if !b.IsPositive() || b.LessThan(a) {
				continue
			}
			diff := a.Mul(qty).Sub(b).Abs()
			if diff.GreaterThanOrEqual(tolerance(b)) {
				continue
			}
			if !found || diff.LessThan(bestErr) ||
				(diff.Equal(bestErr) && b.GreaterThan(bestTotal)) {
				found = true
				bestErr = diff
				bestUnit = a
				bestTotal = b
			}
		}
	}
	if !found {
		return nil, nil
	}
	return &bestUnit, &bestTotal
}

// tolerance is relative to the total candidate with an absolute floor,
// absorbing rounding noise from text extraction.
func tolerance(total decimal.Decimal) decimal.Decimal {
	base := total
	if base.LessThan(one) {
		base = one
	}
	tol := base.Mul(relTolerance)
	if tol.LessThan(minTolerance) {
		return minTolerance
	}
	return tol
}

package parser

import (
	"regexp"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

// localeNumber matches pt-BR decimals with or without thousands dots and
// 2 to 4 decimal places ("1.234,56", "2,0000").
const localeNumber = `(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2,4}`

var (
	numberRe = regexp.MustCompile(localeNumber)

	qtyThenUnitRe = regexp.MustCompile(`(` + localeNumber + `)\s*(` + normalizer.UnitAlternation() + `)\b`)
	unitThenQtyRe = regexp.MustCompile(`(` + normalizer.UnitAlternation() + `)\s*(` + localeNumber + `)\b`)
	unitTokenRe   = regexp.MustCompile(normalizer.UnitAlternation())
)

// recoverQuantityUnit finds the quantity and unit in the text that follows
// the header match, in priority order: quantity-then-unit, unit-then-
// quantity, then any unit token with the nearest preceding number as the
// quantity. Without a unit token both stay empty. The quantity is kept
// verbatim, decimal separators included.
func recoverQuantityUnit(rest string) (quantityText, unit string) {
	if m := qtyThenUnitRe.FindStringSubmatch(rest); m != nil {
		return m[1], m[2]
	}
	if m := unitThenQtyRe.FindStringSubmatch(rest); m != nil {
		return m[2], m[1]
	}

	loc := unitTokenRe.FindStringIndex(rest)
	if loc == nil {
		return "", ""
	}
	unit = rest[loc[0]:loc[1]]
	before := numberRe.FindAllString(rest[:loc[0]], -1)
	if len(before) > 0 {
		quantityText = before[len(before)-1]
	}
	return quantityText, unit
}

// Package normalizer provides token and number normalization for NF-e
// extraction. It handles pt-BR decimal notation, NM material keys, IT
// sequence numbers and the product code families used on our invoices.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Units is the fixed unit-of-measure vocabulary seen on invoices and
// reference listings. Order matters: it is joined into regexp
// alternations, mirroring how the documents are matched.
var Units = []string{"UN", "KG", "PC", "CJ", "KIT", "PAR", "M", "L", "LT", "CX"}

// UnitAlternation returns the vocabulary as a regexp alternation
// ("UN|KG|...") for callers building unit-aware patterns.
func UnitAlternation() string {
	return strings.Join(Units, "|")
}

// IsUnit reports whether tok is a member of the unit vocabulary.
func IsUnit(tok string) bool {
	for _, u := range Units {
		if tok == u {
			return true
		}
	}
	return false
}

var (
	digitRe = regexp.MustCompile(`\d`)

	codeBJ8  = regexp.MustCompile(`BJ(\d{8})`)
	codeBJ35 = regexp.MustCompile(`\bBJ(\d{3})(\d{5})\b`)
	codeBX3  = regexp.MustCompile(`BX(\d{3})`)
)

// ParseLocaleDecimal interprets a pt-BR formatted number where '.' is the
// thousands separator and ',' the decimal separator ("1.234,56" ->
// 1234.56). Malformed input returns an error; callers are expected to
// catch it and leave the field unset.
func ParseLocaleDecimal(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, fmt.Errorf("parse locale decimal: empty input")
	}
	t = strings.ReplaceAll(t, ".", "")
	t = strings.ReplaceAll(t, ",", ".")
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse locale decimal %q: %w", s, err)
	}
	return d, nil
}

// MaterialKey normalizes an NM token ("NM12773524", "12.773.524") into
// the canonical grouped form "12.773.524". Exactly 8 digits are regrouped
// 2-3-3; any other non-zero digit count falls back to right-to-left
// grouping by 3. Returns "" when the input carries no digits.
func MaterialKey(s string) string {
	digits := strings.Join(digitRe.FindAllString(s, -1), "")
	if digits == "" {
		return ""
	}
	if len(digits) == 8 {
		return digits[:2] + "." + digits[2:5] + "." + digits[5:]
	}
	return groupThousands(digits)
}

// groupThousands splits a digit run into dot-separated groups of 3,
// right to left ("1234567" -> "1.234.567").
func groupThousands(digits string) string {
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, ".")
}

// SequenceNumber normalizes an IT token ("IT200", "IT 200") to its bare
// digits. Returns "" when no digits remain.
func SequenceNumber(s string) string {
	return strings.Join(digitRe.FindAllString(s, -1), "")
}

// FormatItemCode applies the product code family grouping rules, first
// match wins:
//
//	AC0505BJ08000200 -> "BJ 080.00200"
//	...BJ028 00629... -> "BJ 028.00629"
//	XYZBX156         -> "BX 156"
//
// Codes outside the known families are returned unchanged.
func FormatItemCode(raw string) string {
	if raw == "" {
		return raw
	}
	if m := codeBJ8.FindStringSubmatch(raw); m != nil {
		num := m[1]
		return "BJ " + num[:3] + "." + num[3:]
	}
	if m := codeBJ35.FindStringSubmatch(raw); m != nil {
		return "BJ " + m[1] + "." + m[2]
	}
	if m := codeBX3.FindStringSubmatch(raw); m != nil {
		return "BX " + m[1]
	}
	return raw
}

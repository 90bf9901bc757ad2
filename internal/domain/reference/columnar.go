package reference

import (
	"regexp"
	"strings"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

var (
	// columnarKeyRe anchors a data line: punctuated NM key, whitespace,
	// then the rest of the columns.
	columnarKeyRe = regexp.MustCompile(`^(\d{2}\.\d{3}\.\d{3})\s+(.*)$`)

	// columnarTailRe anchors quantity, unit, cost center and PEP element
	// at the end of the line; the description is whatever sits between
	// the key and this tail.
	columnarTailRe = regexp.MustCompile(
		`(\d{1,3}(?:\.\d{3})*(?:,\d{1,4})?)\s+(` + normalizer.UnitAlternation() + `)\s+(\d{3,5})\s+([A-Z0-9\-/\\]+)\s*$`)
)

// parseColumnar handles the PDF rendering of the reference listing, where
// each record is one text line with loosely aligned columns. Lines that
// do not carry both the leading key and the trailing column group are
// skipped.
func parseColumnar(text string) []Item {
	var items []Item
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}

		km := columnarKeyRe.FindStringSubmatch(ln)
		if km == nil {
			continue
		}
		rest := km[2]

		tail := columnarTailRe.FindStringSubmatchIndex(rest)
		if tail == nil {
			continue
		}

		items = append(items, Item{
			MaterialKey:      normalizer.MaterialKey(km[1]),
			ShortDescription: strings.TrimSpace(rest[:tail[0]]),
			QuantityText:     rest[tail[2]:tail[3]],
			Unit:             rest[tail[4]:tail[5]],
			CostCenter:       rest[tail[6]:tail[7]],
			ProjectElement:   rest[tail[8]:tail[9]],
		})
	}
	return items
}

package reference

import (
	"strings"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

// parsePipeDelimited handles SAP-style listings where every row is piped:
//
//	| 12.753.068 | BUCHA DE REDUCAO | 2 | UN | 0803 | IN-3668-15-951-MRP |
//
// Leading/trailing pipes are trimmed per line, fields are split on '|'
// tolerating surrounding whitespace, and a header row is skipped when its
// first two fields look like material/text column names. Rows need at
// least 6 fields; the key accepts punctuated or raw 8-digit form.
func parsePipeDelimited(text string) ([]Item, error) {
	var items []Item
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		ln = strings.Trim(ln, "|")

		parts := strings.Split(ln, "|")
		fields := make([]string, len(parts))
		for i, p := range parts {
			fields[i] = strings.TrimSpace(p)
		}
		if len(fields) < 6 {
			continue
		}
		if isPipeHeader(fields) {
			continue
		}

		key := normalizer.MaterialKey(fields[0])
		if !materialKeyRe.MatchString(key) {
			continue
		}
		items = append(items, Item{
			MaterialKey:      key,
			ShortDescription: fields[1],
			QuantityText:     fields[2],
			Unit:             fields[3],
			CostCenter:       fields[4],
			ProjectElement:   fields[5],
		})
	}
	return items, nil
}

// isPipeHeader reports whether the first two fields name the material and
// text columns rather than carrying data.
func isPipeHeader(fields []string) bool {
	first := normalizeHeaderCell(fields[0])
	second := normalizeHeaderCell(fields[1])
	firstLooksKey := first == "nm" || strings.Contains(first, "material")
	secondLooksText := strings.Contains(second, "text") || strings.Contains(second, "descr")
	return firstLooksKey && secondLooksText
}

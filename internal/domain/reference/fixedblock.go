package reference

import (
	"regexp"
	"strings"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

var (
	// separatorRe matches ruler lines (dashes, equals, asterisks and the
	// like) used between blocks in the ERP text export.
	separatorRe = regexp.MustCompile(`^[\-\=\*_\\/\s]{5,}$`)

	quantityLineRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*(?:,\d{1,4})?$`)
	costCenterRe   = regexp.MustCompile(`^\d{3,5}$`)
	projectElemRe  = regexp.MustCompile(`(?i)^[A-Z0-9\-/\\]+$`)
)

// parseFixedBlock scans the 6-line-per-item text export: a punctuated NM
// key line followed by description, quantity, unit, cost center and PEP
// element. Separator and blank lines are stripped up front. A block that
// fails any field validation does not abort the file; the scan advances
// one line and retries, so one corrupted block costs at most itself.
func parseFixedBlock(text string) []Item {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || separatorRe.MatchString(ln) {
			continue
		}
		lines = append(lines, ln)
	}

	var items []Item
	i, n := 0, len(lines)
	for i < n {
		if !materialKeyRe.MatchString(lines[i]) {
			i++
			continue
		}
		if n-i < 6 {
			break
		}

		desc, qty, unit, center, pep := lines[i+1], lines[i+2], lines[i+3], lines[i+4], lines[i+5]
		if !quantityLineRe.MatchString(qty) ||
			!normalizer.IsUnit(unit) ||
			!costCenterRe.MatchString(center) ||
			!projectElemRe.MatchString(pep) {
			i++
			continue
		}

		items = append(items, Item{
			MaterialKey:      normalizer.MaterialKey(lines[i]),
			ShortDescription: desc,
			QuantityText:     qty,
			Unit:             unit,
			CostCenter:       center,
			ProjectElement:   pep,
		})
		i += 6
	}
	return items
}

// Package reconcile cross-checks extracted invoice items against the
// reference listing by NM material key: a full outer join partitioned
// into matched, invoice-only and reference-only sets.
package reconcile

import (
	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
)

// Pair is one matched row: an invoice item joined with a reference item
// sharing the same material key.
type Pair struct {
	Invoice   parser.Item
	Reference reference.Item
}

// Result is the three-way partition of the outer join. The partitions are
// disjoint and together cover every input record.
type Result struct {
	Matched       []Pair
	InvoiceOnly   []parser.Item
	ReferenceOnly []reference.Item
}

// Counts reports the size of each partition, the user-facing summary
// numbers.
type Counts struct {
	Matched       int
	InvoiceOnly   int
	ReferenceOnly int
}

func (r *Result) Counts() Counts {
	return Counts{
		Matched:       len(r.Matched),
		InvoiceOnly:   len(r.InvoiceOnly),
		ReferenceOnly: len(r.ReferenceOnly),
	}
}

// Join performs the full outer join on MaterialKey. Records with an empty
// key never match anything: each behaves as a key distinct from every
// other, so they land in their side's "only" partition. Duplicate keys
// join pairwise, one Pair per invoice/reference combination, mirroring a
// relational outer join.
func Join(invoiceItems []parser.Item, referenceItems []reference.Item) *Result {
	byKey := make(map[string][]reference.Item, len(referenceItems))
	for _, ref := range referenceItems {
		if ref.MaterialKey == "" {
			continue
		}
		byKey[ref.MaterialKey] = append(byKey[ref.MaterialKey], ref)
	}

	result := &Result{}
	matchedKeys := make(map[string]bool)

	for _, item := range invoiceItems {
		refs, ok := byKey[item.MaterialKey]
		if item.MaterialKey == "" || !ok {
			result.InvoiceOnly = append(result.InvoiceOnly, item)
			continue
		}
		matchedKeys[item.MaterialKey] = true
		for _, ref := range refs {
			result.Matched = append(result.Matched, Pair{Invoice: item, Reference: ref})
		}
	}

	for _, ref := range referenceItems {
		if ref.MaterialKey == "" || !matchedKeys[ref.MaterialKey] {
			result.ReferenceOnly = append(result.ReferenceOnly, ref)
		}
	}

	return result
}

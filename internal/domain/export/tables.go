// Package export serializes extracted and reconciled record sets into
// spreadsheet-style tables (XLSX and CSV). Column layout follows the
// reconciliation report: per-side names carry " (NF)" / " (REF)" so the
// origin of overlapping fields stays visible after the join; NM is the
// single shared key column.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reconcile"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
)

// invoiceHeaders and referenceHeaders are the exact exported column
// names. Quantities stay verbatim text so a re-import reproduces them
// byte for byte.
var invoiceHeaders = []string{
	"Código (Raw Base)", "Código (Raw)", "Código", "IT", "NM",
	"Descrição (NF)", "NCM/SH", "CFOP", "UN (NF)", "QTD (NF)",
	"V. Unitário (R$)", "V. Total (R$)",
}

var referenceHeaders = []string{
	"NM", "Texto breve material (REF)", "QTD (REF)", "UM (REF)",
	"Centro (REF)", "Elemento PEP (REF)",
}

// matchedHeaders joins both sides with NM appearing once.
var matchedHeaders = []string{
	"Código (Raw Base)", "Código (Raw)", "Código", "IT", "NM",
	"Descrição (NF)", "NCM/SH", "CFOP", "UN (NF)", "QTD (NF)",
	"V. Unitário (R$)", "V. Total (R$)",
	"Texto breve material (REF)", "QTD (REF)", "UM (REF)",
	"Centro (REF)", "Elemento PEP (REF)",
}

func priceCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func invoiceRow(item parser.Item) []any {
	return []any{
		item.RawCodeBase, item.RawCode, item.Code, item.Sequence, item.MaterialKey,
		item.Description, item.NCM, item.CFOP, item.Unit, item.QuantityText,
		priceCell(item.UnitPrice), priceCell(item.TotalPrice),
	}
}

func referenceRow(item reference.Item) []any {
	return []any{
		item.MaterialKey, item.ShortDescription, item.QuantityText,
		item.Unit, item.CostCenter, item.ProjectElement,
	}
}

func matchedRow(pair reconcile.Pair) []any {
	row := invoiceRow(pair.Invoice)
	row = append(row,
		pair.Reference.ShortDescription, pair.Reference.QuantityText,
		pair.Reference.Unit, pair.Reference.CostCenter, pair.Reference.ProjectElement)
	return row
}

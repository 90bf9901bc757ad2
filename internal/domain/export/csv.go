package export

import (
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reconcile"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
)

// InvoiceCSVRow mirrors the invoice table columns for struct-based CSV
// marshaling.
type InvoiceCSVRow struct {
	RawCodeBase string `csv:"Código (Raw Base)"`
	RawCode     string `csv:"Código (Raw)"`
	Code        string `csv:"Código"`
	Sequence    string `csv:"IT"`
	MaterialKey string `csv:"NM"`
	Description string `csv:"Descrição (NF)"`
	NCM         string `csv:"NCM/SH"`
	CFOP        string `csv:"CFOP"`
	Unit        string `csv:"UN (NF)"`
	Quantity    string `csv:"QTD (NF)"`
	UnitPrice   string `csv:"V. Unitário (R$)"`
	TotalPrice  string `csv:"V. Total (R$)"`
}

type referenceCSVRow struct {
	MaterialKey    string `csv:"NM"`
	Description    string `csv:"Texto breve material (REF)"`
	Quantity       string `csv:"QTD (REF)"`
	Unit           string `csv:"UM (REF)"`
	CostCenter     string `csv:"Centro (REF)"`
	ProjectElement string `csv:"Elemento PEP (REF)"`
}

func priceText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func toInvoiceCSVRow(item parser.Item) InvoiceCSVRow {
	return InvoiceCSVRow{
		RawCodeBase: item.RawCodeBase,
		RawCode:     item.RawCode,
		Code:        item.Code,
		Sequence:    item.Sequence,
		MaterialKey: item.MaterialKey,
		Description: item.Description,
		NCM:         item.NCM,
		CFOP:        item.CFOP,
		Unit:        item.Unit,
		Quantity:    item.QuantityText,
		UnitPrice:   priceText(item.UnitPrice),
		TotalPrice:  priceText(item.TotalPrice),
	}
}

func toReferenceCSVRow(item reference.Item) referenceCSVRow {
	return referenceCSVRow{
		MaterialKey:    item.MaterialKey,
		Description:    item.ShortDescription,
		Quantity:       item.QuantityText,
		Unit:           item.Unit,
		CostCenter:     item.CostCenter,
		ProjectElement: item.ProjectElement,
	}
}

// InvoiceCSV renders invoice items as CSV with the same columns as the
// XLSX export.
func InvoiceCSV(items []parser.Item) ([]byte, error) {
	rows := make([]InvoiceCSVRow, len(items))
	for i, item := range items {
		rows[i] = toInvoiceCSVRow(item)
	}
	return gocsv.MarshalBytes(&rows)
}

// ReferenceCSV renders reference items as CSV. The output re-imports
// through the delimited strategy with quantities intact.
func ReferenceCSV(items []reference.Item) ([]byte, error) {
	rows := make([]referenceCSVRow, len(items))
	for i, item := range items {
		rows[i] = toReferenceCSVRow(item)
	}
	return gocsv.MarshalBytes(&rows)
}

// InvoiceOnlyCSV renders the invoice-only partition.
func InvoiceOnlyCSV(items []parser.Item) ([]byte, error) {
	return InvoiceCSV(items)
}

// ReferenceOnlyCSV renders the reference-only partition.
func ReferenceOnlyCSV(items []reference.Item) ([]byte, error) {
	return ReferenceCSV(items)
}

// matchedCSVRow merges both sides, NM once.
type matchedCSVRow struct {
	InvoiceCSVRow
	RefDescription    string `csv:"Texto breve material (REF)"`
	RefQuantity       string `csv:"QTD (REF)"`
	RefUnit           string `csv:"UM (REF)"`
	RefCostCenter     string `csv:"Centro (REF)"`
	RefProjectElement string `csv:"Elemento PEP (REF)"`
}

// MatchedCSV renders the matched partition.
func MatchedCSV(pairs []reconcile.Pair) ([]byte, error) {
	rows := make([]matchedCSVRow, len(pairs))
	for i, pair := range pairs {
		rows[i] = matchedCSVRow{
			InvoiceCSVRow:     toInvoiceCSVRow(pair.Invoice),
			RefDescription:    pair.Reference.ShortDescription,
			RefQuantity:       pair.Reference.QuantityText,
			RefUnit:           pair.Reference.Unit,
			RefCostCenter:     pair.Reference.CostCenter,
			RefProjectElement: pair.Reference.ProjectElement,
		}
	}
	return gocsv.MarshalBytes(&rows)
}

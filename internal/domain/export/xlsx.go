package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reconcile"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
)

// InvoiceXLSX renders the extracted invoice items as a workbook.
func InvoiceXLSX(items []parser.Item) ([]byte, error) {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = invoiceRow(item)
	}
	return workbook("Itens NF", invoiceHeaders, rows)
}

// ReferenceXLSX renders the parsed reference items as a workbook.
func ReferenceXLSX(items []reference.Item) ([]byte, error) {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = referenceRow(item)
	}
	return workbook("Referencia", referenceHeaders, rows)
}

// MatchedXLSX renders the matched partition, both sides merged per row.
func MatchedXLSX(pairs []reconcile.Pair) ([]byte, error) {
	rows := make([][]any, len(pairs))
	for i, pair := range pairs {
		rows[i] = matchedRow(pair)
	}
	return workbook("Conciliados", matchedHeaders, rows)
}

// InvoiceOnlyXLSX renders the invoice-only partition.
func InvoiceOnlyXLSX(items []parser.Item) ([]byte, error) {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = invoiceRow(item)
	}
	return workbook("Somente NF", invoiceHeaders, rows)
}

// ReferenceOnlyXLSX renders the reference-only partition.
func ReferenceOnlyXLSX(items []reference.Item) ([]byte, error) {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = referenceRow(item)
	}
	return workbook("Somente REF", referenceHeaders, rows)
}

// workbook builds a single-sheet workbook with one header row.
func workbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

package reference

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the active sheet of an XLSX workbook and maps its rows
// with the same header/positional resolution as the delimited strategy,
// so a spreadsheet saved from one of our own exports round-trips.
func parseXLSX(data []byte, opts Options) ([]Item, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx reference: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	columns, hasHeader, err := resolveColumns(rows[0], opts)
	if err != nil {
		return nil, err
	}
	if hasHeader {
		rows = rows[1:]
	}

	return itemsFromRecords(rows, columns), nil
}

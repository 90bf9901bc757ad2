package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	t.Run("maps headers like the delimited strategy", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"NM", "Texto breve material", "QTD", "UM", "Centro", "Elemento PEP"},
			{"12.753.068", "BUCHA DE REDUCAO", "100,000", "KG", "0803", "IN-3668-15-951-MRP"},
		})

		items, err := parseXLSX(data, Options{})
		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Equal(t, "12.753.068", items[0].MaterialKey)
		assert.Equal(t, "100,000", items[0].QuantityText)
		assert.Equal(t, "KG", items[0].Unit)
	})

	t.Run("rejects workbooks without identifiable columns", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"foo", "bar"},
			{"1", "2"},
		})

		_, err := parseXLSX(data, Options{})
		assert.ErrorIs(t, err, ErrColumnsNotFound)
	})

	t.Run("rejects non-xlsx bytes", func(t *testing.T) {
		_, err := parseXLSX([]byte("not a workbook"), Options{})
		assert.Error(t, err)
	})
}

func TestParseDispatch(t *testing.T) {
	t.Run("routes to the selected strategy", func(t *testing.T) {
		items, err := Parse([]byte("12.753.068\nBUCHA\n2\nUN\n0803\nIN-3668"), FormatFixedBlock, Options{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "12.753.068", items[0].MaterialKey)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Parse(nil, Format("bogus"), Options{})
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"fixed-block", "delimited", "pipe", "columnar-pdf", "xlsx"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("csvish")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

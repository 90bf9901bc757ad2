package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixedBlock(t *testing.T) {
	t.Run("parses 6-line blocks between separators", func(t *testing.T) {
		text := strings.Join([]string{
			"LISTAGEM DE MATERIAIS",
			"----------------------",
			"12.753.068",
			"BUCHA DE REDUCAO",
			"100,000",
			"KG",
			"0803",
			"IN-3668-15-951-MRP",
			"======================",
			"12.773.524",
			"PARAFUSO SEXT",
			"2",
			"UN",
			"0803",
			"IN-3668-15-951-MRP",
		}, "\n")

		items := parseFixedBlock(text)
		require.Len(t, items, 2)

		assert.Equal(t, "12.753.068", items[0].MaterialKey)
		assert.Equal(t, "BUCHA DE REDUCAO", items[0].ShortDescription)
		assert.Equal(t, "100,000", items[0].QuantityText)
		assert.Equal(t, "KG", items[0].Unit)
		assert.Equal(t, "0803", items[0].CostCenter)
		assert.Equal(t, "IN-3668-15-951-MRP", items[0].ProjectElement)

		assert.Equal(t, "12.773.524", items[1].MaterialKey)
		assert.Equal(t, "2", items[1].QuantityText)
	})

	t.Run("advances one line past an invalid block", func(t *testing.T) {
		text := strings.Join([]string{
			"12.753.068",
			"DESCRICAO QUEBRADA",
			"not-a-quantity",
			"KG",
			"0803",
			"IN-3668",
			"12.773.524",
			"PARAFUSO",
			"2",
			"UN",
			"0803",
			"IN-3668",
		}, "\n")

		items := parseFixedBlock(text)
		require.Len(t, items, 1)
		assert.Equal(t, "12.773.524", items[0].MaterialKey)
	})

	t.Run("rejects wrong unit and cost center", func(t *testing.T) {
		text := strings.Join([]string{
			"12.753.068",
			"DESC",
			"2",
			"ZZ", // not in the unit vocabulary
			"0803",
			"IN-3668",
		}, "\n")
		assert.Empty(t, parseFixedBlock(text))

		text = strings.Join([]string{
			"12.753.068",
			"DESC",
			"2",
			"UN",
			"08", // too short for a cost center
			"IN-3668",
		}, "\n")
		assert.Empty(t, parseFixedBlock(text))
	})

	t.Run("truncated trailing block is dropped", func(t *testing.T) {
		text := "12.753.068\nDESC\n2\nUN"
		assert.Empty(t, parseFixedBlock(text))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, parseFixedBlock(""))
	})
}
